package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devopsctl/devops-cli/internal/version"
	"github.com/devopsctl/devops-cli/pkg/cobrax/topics"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: groupMisc,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               groupMisc,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// ManHeader is the man page header shared by `man` and the man page generator
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DEVOPS-CLI",
		Section: "1",
		Source:  "devops-cli " + version.Version,
		Manual:  "devops-cli manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		GroupID: groupMisc,
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Man pages written to %s\n", filepath.Clean(dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		Args:    cobra.NoArgs,
		GroupID: groupMisc,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{topics.ListKeyword})
			return nil
		},
	}
}
