// Package config handles configuration management for devops-cli.
//
// Values are layered, lowest precedence first: embedded defaults, the user
// file in the XDG config directory, the project's .devops-cli.toml, and
// DEVOPS_CLI_* environment variables. `config set` writes to the user file.
package config
