// Package cli builds the devops-cli cobra command tree.
package cli

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/devopsctl/devops-cli/internal/version"
	"github.com/devopsctl/devops-cli/pkg/cobrax/topics"
	"github.com/devopsctl/devops-cli/pkg/ui"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// Command group IDs
const (
	groupInfra   = "infra"
	groupRelease = "release"
	groupMisc    = "misc"
)

// NewRootCmd creates the root command with the real runner and downloader
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(Deps{})
}

// NewRootCmdWithDeps creates the root command with the given collaborators
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	initTemplateFormatting()

	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "devops-cli",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.format, "format", ui.FormatAuto.String(), MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: groupInfra, Title: "INFRASTRUCTURE:"},
		&cobra.Group{ID: groupRelease, Title: "RELEASE:"},
		&cobra.Group{ID: groupMisc, Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newTerraformCmd(a))
	rootCmd.AddCommand(newScriptCmd(a))
	rootCmd.AddCommand(newPipelineCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newFormulaCmd(a))
	rootCmd.AddCommand(newSelfInstallCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newTopicsCmd())

	if tm, err := topics.Load(topicsFS, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	}); err == nil {
		tm.Install(rootCmd)
	}
	rootCmd.SetHelpCommandGroupID(groupMisc)

	return rootCmd
}

// Execute runs the command tree with a context cancelled by SIGINT or SIGTERM
func Execute(rootCmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
