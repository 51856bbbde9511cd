// Package paths provides centralized path handling for devops-cli.
//
// It follows the XDG Base Directory specification for everything the CLI
// owns and resolves the project root for commands that write into a
// repository (pipeline files, workspace config).
//
// # Environment Variables
//
//   - DEVOPS_CLI_CONFIG_DIR: Override config directory (default: $XDG_CONFIG_HOME/devops-cli)
//   - DEVOPS_CLI_CACHE_DIR: Override cache directory (default: $XDG_CACHE_HOME/devops-cli)
//   - DEVOPS_CLI_BIN_DIR: Override install directory for self-install (default: ~/.local/bin)
//   - XDG_STATE_HOME: State and log location (default: ~/.local/state)
//
// # Usage
//
//	p, err := paths.New("")  // Auto-detect project root
//	if err != nil {
//	    return err
//	}
//
//	p.ConfigFile()     // ~/.config/devops-cli/config.toml
//	p.PipelineDir("")  // <git root>/.github/workflows
package paths
