package cli

import (
	"fmt"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/pipeline"
	"github.com/devopsctl/devops-cli/pkg/ui/view"
	"github.com/spf13/cobra"
)

func newPipelineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipeline",
		Aliases: []string{"ci"},
		Short:   MsgPipelineShort,
		Long:    MsgPipelineLong,
		Example: MsgPipelineExample,
		GroupID: groupInfra,
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "create <template>",
		Short:     MsgPipeCreateShort,
		Args:      cobra.ExactArgs(1),
		ValidArgs: pipeline.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pipeline.Create(args[0], pipeline.CreateOptions{
				Dir:    a.paths.PipelineDir(a.loaded.Pipeline.Dir),
				Branch: a.loaded.Git.Branch,
			})
			if errors.IsErrorCode(err, errors.ErrTemplateNotFound) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, MsgTemplateNotFound+"\n", args[0])
				for _, name := range pipeline.Names() {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			if err != nil {
				return fmt.Errorf(MsgErrCreatePipe, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPipelineCreated+"\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "templates",
		Aliases: []string{"list"},
		Short:   MsgPipeListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := &view.List{Title: MsgAvailableTemplates}
			for _, t := range pipeline.Templates() {
				result.Items = append(result.Items, view.Item{
					Name:   t.Key,
					Detail: "Language: " + t.Language,
				})
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	})

	var message string
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: MsgPipePushShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("message") {
				answer, err := a.prompt(cmd).Ask(MsgCommitPrompt, pipeline.DefaultCommitMessage)
				if err != nil {
					return fmt.Errorf(MsgErrPushPipe, err)
				}
				message = answer
			}

			opts := pipeline.PushOptions{
				RepoDir:     a.paths.ProjectRoot(),
				PipelineDir: a.paths.PipelineDir(a.loaded.Pipeline.Dir),
				Message:     message,
				Remote:      a.loaded.Git.Remote,
				Branch:      a.loaded.Git.Branch,
			}

			out := cmd.OutOrStdout()
			r := echoRunner{Runner: a.runner(cmd), out: out}
			if err := pipeline.Push(commandContext(cmd), r, opts); err != nil {
				return fmt.Errorf(MsgErrPushPipe, err)
			}
			fmt.Fprintln(out, MsgPipelinePushed)
			return nil
		},
	}
	pushCmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	cmd.AddCommand(pushCmd)

	return cmd
}
