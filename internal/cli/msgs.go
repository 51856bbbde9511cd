package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort        = "A DevOps automation CLI tool"
	MsgTerraformShort   = "Run Terraform commands"
	MsgTfInitShort      = "Initialize a Terraform working directory"
	MsgTfPlanShort      = "Show the changes Terraform would make"
	MsgTfApplyShort     = "Apply Terraform changes"
	MsgTfDestroyShort   = "Destroy Terraform-managed resources"
	MsgScriptShort      = "Run and list bash scripts"
	MsgScriptBashShort  = "Run a bash script"
	MsgScriptListShort  = "List bash scripts in a directory"
	MsgPipelineShort    = "Manage CI/CD pipelines"
	MsgPipeCreateShort  = "Create a pipeline from a template"
	MsgPipeListShort    = "List available pipeline templates"
	MsgPipePushShort    = "Commit and push the pipeline directory"
	MsgConfigShort      = "Manage CLI configuration"
	MsgConfigShowShort  = "Show the effective configuration"
	MsgConfigSetShort   = "Persist a configuration value"
	MsgConfigInitShort  = "Set up the workspace directory and git branch interactively"
	MsgConfigPathShort  = "Print the config file locations"
	MsgConfigGenShort   = "Print a commented config file with the default values"
	MsgFormulaShort     = "Manage the Homebrew formula"
	MsgFormulaValShort  = "Validate the formula"
	MsgFormulaRendShort = "Print the Homebrew Ruby formula"
	MsgFormulaBumpShort = "Move the formula to a new version and refresh checksums"
	MsgFormulaSumShort  = "Print the SHA-256 checksum of a file"
	MsgSelfInstallShort = "Install the devops-cli binary from the formula"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate the man page"
	MsgTopicsShort      = "Display available documentation topics"
	MsgTopicsLong       = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Status messages
	MsgApplyCancelled     = "Apply cancelled."
	MsgDestroyCancelled   = "Destroy cancelled."
	MsgRunningTerraform   = "Running: terraform %s in %s"
	MsgRunningScript      = "Running script: %s"
	MsgAvailableScripts   = "Available scripts in %s"
	MsgNoScripts          = "No bash scripts found in %s"
	MsgAvailableTemplates = "Available pipeline templates"
	MsgPipelineCreated    = "Pipeline created: %s"
	MsgTemplateNotFound   = "Template '%s' not found. Available templates:"
	MsgPipelinePushed     = "Pipeline pushed to repository successfully!"
	MsgRunningGit         = "Running: %s"
	MsgCommitPrompt       = "Commit message"
	MsgCurrentConfig      = "Current configuration"
	MsgConfigSet          = "Set %s = %s"
	MsgConfigWritten      = "Saved to %s"
	MsgWorkspacePrompt    = "Enter workspace directory"
	MsgBranchPrompt       = "Enter Git branch"
	MsgWorkspaceReady     = "Workspace directory ready: %s"
	MsgFormulaValid       = "Formula %s %s is valid (%s)"
	MsgFormulaBumped      = "Formula %s bumped to %s"
	MsgInstalled          = "Installed %s %s to %s"

	// Error messages
	MsgErrInitPaths   = "failed to initialize paths: %w"
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrFormat      = "invalid --format: %w"
	MsgErrTerraform   = "terraform %s failed: %w"
	MsgErrRunScript   = "failed to run script: %w"
	MsgErrListScripts = "failed to list scripts: %w"
	MsgErrCreatePipe  = "failed to create pipeline: %w"
	MsgErrPushPipe    = "failed to push pipeline: %w"
	MsgErrSetConfig   = "failed to set configuration: %w"
	MsgErrInitConfig  = "failed to initialize workspace: %w"
	MsgErrFormula     = "formula %s failed: %w"
	MsgErrSelfInstall = "self-install failed: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Print external commands instead of running them"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/devops-cli/config.toml)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagYes       = "Skip the confirmation prompt"
	MsgFlagMessage   = "Commit message (prompted for when omitted)"
	MsgFlagFile      = "Formula file (default from the formula-file setting)"
	MsgFlagBinDir    = "Directory to install the binary into"
	MsgFlagOS        = "Operating system artifact to install (darwin or linux)"
	MsgFlagOutput    = "Write the rendered formula to this file instead of stdout"
	MsgFlagManDir    = "Directory to write man pages into"
	MsgFlagSkipSmoke = "Do not run the installed binary's smoke test"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/terraform-long.txt
	msgTerraformLongRaw string
	MsgTerraformLong    = strings.TrimSpace(msgTerraformLongRaw)

	//go:embed msgs/terraform-example.txt
	msgTerraformExampleRaw string
	MsgTerraformExample    = strings.TrimRight(msgTerraformExampleRaw, "\n")

	//go:embed msgs/pipeline-long.txt
	msgPipelineLongRaw string
	MsgPipelineLong    = strings.TrimSpace(msgPipelineLongRaw)

	//go:embed msgs/pipeline-example.txt
	msgPipelineExampleRaw string
	MsgPipelineExample    = strings.TrimRight(msgPipelineExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/formula-long.txt
	msgFormulaLongRaw string
	MsgFormulaLong    = strings.TrimSpace(msgFormulaLongRaw)

	//go:embed msgs/formula-example.txt
	msgFormulaExampleRaw string
	MsgFormulaExample    = strings.TrimRight(msgFormulaExampleRaw, "\n")

	//go:embed msgs/self-install-long.txt
	msgSelfInstallLongRaw string
	MsgSelfInstallLong    = strings.TrimSpace(msgSelfInstallLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
