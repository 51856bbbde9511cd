package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/devopsctl/devops-cli/internal/version"
	"github.com/devopsctl/devops-cli/pkg/config"
	"github.com/devopsctl/devops-cli/pkg/confirm"
	"github.com/devopsctl/devops-cli/pkg/download"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/devopsctl/devops-cli/pkg/paths"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/devopsctl/devops-cli/pkg/ui"
	"github.com/spf13/cobra"
)

// Deps replaces process-level collaborators of the command tree. Zero values
// select the real implementations.
type Deps struct {
	// Runner executes terraform, bash and git
	Runner runner.Runner
	// Download fetches release artifacts
	Download *download.Client
	// Environ replaces os.Environ() for configuration overrides
	Environ []string
	// ProjectRoot replaces git root detection
	ProjectRoot string
}

// app carries global flags and the state loaded before every command runs
type app struct {
	deps Deps

	verbosity  int
	dryRun     bool
	configFile string
	format     string

	paths    paths.Paths
	loaded   *config.Loaded
	prompter *confirm.Prompter
}

// setup runs before every command: logging first, then paths and config
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity)
	logger := logging.GetLogger("cli")
	logger.Debug().Str("command", cmd.CommandPath()).Str("version", version.Version).Msg("Command started")

	if _, err := ui.ParseFormat(a.format); err != nil {
		return fmt.Errorf(MsgErrFormat, err)
	}

	p, err := paths.New(a.deps.ProjectRoot)
	if err != nil {
		return fmt.Errorf(MsgErrInitPaths, err)
	}
	a.paths = p

	userFile := a.configFile
	if userFile == "" {
		userFile = p.ConfigFile()
	}
	loaded, err := config.Load(config.LoadOptions{
		UserFile:      paths.ExpandHome(userFile),
		WorkspaceFile: p.WorkspaceConfigPath(),
		Environ:       a.deps.Environ,
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.loaded = loaded

	logger.Debug().
		Strs("files", loaded.Files).
		Str("projectRoot", p.ProjectRoot()).
		Bool("dryRun", a.dryRun).
		Msg("Configuration loaded")
	return nil
}

// userConfigFile is where config set writes
func (a *app) userConfigFile() string {
	if a.configFile != "" {
		return paths.ExpandHome(a.configFile)
	}
	return a.paths.ConfigFile()
}

func (a *app) runner(cmd *cobra.Command) runner.Runner {
	if a.deps.Runner != nil {
		return a.deps.Runner
	}
	r := runner.NewExecRunner(a.dryRun, a.loaded.Commands.Timeout)
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = cmd.ErrOrStderr()
	return r
}

func (a *app) downloader() *download.Client {
	if a.deps.Download != nil {
		return a.deps.Download
	}
	return download.NewClient(download.UserAgent(version.Version))
}

// prompt returns the shared prompter reading from the command's stdin
func (a *app) prompt(cmd *cobra.Command) *confirm.Prompter {
	if a.prompter == nil {
		a.prompter = confirm.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return a.prompter
}

func (a *app) confirmer(cmd *cobra.Command, yes bool) confirm.Confirmer {
	if yes {
		return confirm.Always{}
	}
	return a.prompt(cmd)
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// resolve makes a configured relative path absolute against the project root
func (a *app) resolve(path string) string {
	return a.paths.Resolve(path)
}

// commandContext returns the command's context, which is cancelled on SIGINT
// and SIGTERM when started through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// echoRunner prints each command line before running it. line formats the
// printed text; nil prints "Running: <command line>".
type echoRunner struct {
	runner.Runner
	out  io.Writer
	line func(runner.Command) string
}

func (e echoRunner) Run(ctx context.Context, c runner.Command) error {
	if e.line != nil {
		fmt.Fprintln(e.out, e.line(c))
	} else {
		fmt.Fprintf(e.out, MsgRunningGit+"\n", c.String())
	}
	return e.Runner.Run(ctx, c)
}
