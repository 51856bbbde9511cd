package cli

import (
	"fmt"

	"github.com/devopsctl/devops-cli/pkg/scripts"
	"github.com/devopsctl/devops-cli/pkg/ui/view"
	"github.com/spf13/cobra"
)

func newScriptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "script",
		Aliases: []string{"run"},
		Short:   MsgScriptShort,
		GroupID: groupInfra,
	}

	bashCmd := &cobra.Command{
		Use:   "bash <script-path> [args...]",
		Short: MsgScriptBashShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), MsgRunningScript+"\n", args[0])

			exec := &scripts.Executor{Runner: a.runner(cmd)}
			if err := exec.Run(commandContext(cmd), args[0], args[1:]); err != nil {
				return fmt.Errorf(MsgErrRunScript, err)
			}
			return nil
		},
	}
	// Everything after the script path belongs to the script, flags included
	bashCmd.Flags().SetInterspersed(false)
	cmd.AddCommand(bashCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list [directory]",
		Short: MsgScriptListShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			found, err := scripts.List(dir)
			if err != nil {
				return fmt.Errorf(MsgErrListScripts, err)
			}

			result := &view.List{
				Title: fmt.Sprintf(MsgAvailableScripts, dir),
				Empty: fmt.Sprintf(MsgNoScripts, dir),
				Items: make([]view.Item, 0, len(found)),
			}
			for _, s := range found {
				result.Items = append(result.Items, view.Item{Name: s.Name})
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	})

	return cmd
}
