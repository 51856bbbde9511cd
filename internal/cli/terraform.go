package cli

import (
	"fmt"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/devopsctl/devops-cli/pkg/terraform"
	"github.com/spf13/cobra"
)

func newTerraformCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "terraform",
		Aliases: []string{"tf"},
		Short:   MsgTerraformShort,
		Long:    MsgTerraformLong,
		Example: MsgTerraformExample,
		GroupID: groupInfra,
	}

	cmd.AddCommand(newTerraformActionCmd(a, terraform.ActionInit, MsgTfInitShort, ""))
	cmd.AddCommand(newTerraformActionCmd(a, terraform.ActionPlan, MsgTfPlanShort, ""))
	cmd.AddCommand(newTerraformActionCmd(a, terraform.ActionApply, MsgTfApplyShort, MsgApplyCancelled))
	cmd.AddCommand(newTerraformActionCmd(a, terraform.ActionDestroy, MsgTfDestroyShort, MsgDestroyCancelled))
	return cmd
}

// newTerraformActionCmd builds `terraform <action> [directory] [-- args]`.
// cancelled is printed when the user declines the confirmation prompt.
func newTerraformActionCmd(a *app, action terraform.Action, short, cancelled string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   string(action) + " [directory] [-- terraform args]",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if n := positionalCount(cmd, args); n > 1 {
				return fmt.Errorf("accepts at most 1 directory, received %d", n)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, extra := splitDashArgs(cmd, args)

			resolved, err := terraform.ResolveDir(dir)
			if err != nil {
				return fmt.Errorf(MsgErrTerraform, action, err)
			}

			client := &terraform.Client{
				Binary: a.loaded.Terraform.Path,
				Runner: echoRunner{
					Runner: a.runner(cmd),
					out:    cmd.OutOrStdout(),
					line:   terraformLine,
				},
				Confirmer: a.confirmer(cmd, yes),
			}

			err = client.Run(commandContext(cmd), action, terraform.Options{Dir: resolved, ExtraArgs: extra})
			if errors.IsErrorCode(err, errors.ErrCancelled) && cancelled != "" {
				fmt.Fprintln(cmd.OutOrStdout(), cancelled)
				return nil
			}
			if err != nil {
				return fmt.Errorf(MsgErrTerraform, action, err)
			}
			return nil
		},
	}

	if cancelled != "" {
		cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	}
	return cmd
}

// terraformLine is printed after confirmation, right before terraform starts
func terraformLine(c runner.Command) string {
	return fmt.Sprintf(MsgRunningTerraform, strings.Join(c.Args, " "), c.Dir)
}

// positionalCount is the number of arguments before "--"
func positionalCount(cmd *cobra.Command, args []string) int {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return at
	}
	return len(args)
}

// splitDashArgs returns the optional first positional argument and every
// argument after "--"
func splitDashArgs(cmd *cobra.Command, args []string) (string, []string) {
	n := positionalCount(cmd, args)
	var first string
	if n > 0 {
		first = args[0]
	}
	return first, args[n:]
}
