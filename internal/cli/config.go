package cli

import (
	"fmt"
	"os"

	"github.com/devopsctl/devops-cli/pkg/config"
	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/ui/view"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: groupMisc,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := &view.Settings{Title: MsgCurrentConfig, Files: a.loaded.Files}
			for _, k := range config.Keys() {
				result.Settings = append(result.Settings, view.Setting{
					Key:    k.Name,
					Value:  k.Value(&a.loaded.Config),
					Source: a.loaded.Source(k.Path),
				})
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: MsgConfigSetShort,
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.KeyNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			path := a.userConfigFile()
			if err := config.Set(path, key, value); err != nil {
				return fmt.Errorf(MsgErrSetConfig, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgConfigSet+"\n", key, value)
			fmt.Fprintf(out, MsgConfigWritten+"\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prompt(cmd)

			workspace, err := p.Ask(MsgWorkspacePrompt, a.loaded.Workspace.Dir)
			if err != nil {
				return fmt.Errorf(MsgErrInitConfig, err)
			}
			branch, err := p.Ask(MsgBranchPrompt, a.loaded.Git.Branch)
			if err != nil {
				return fmt.Errorf(MsgErrInitConfig, err)
			}

			dir := a.resolve(workspace)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf(MsgErrInitConfig,
					errors.Wrapf(err, errors.ErrDirCreate, "failed to create workspace directory %s", dir))
			}

			path := a.userConfigFile()
			for _, kv := range [][2]string{{"workspace-dir", workspace}, {"git-branch", branch}} {
				if err := config.Set(path, kv[0], kv[1]); err != nil {
					return fmt.Errorf(MsgErrInitConfig, err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgWorkspaceReady+"\n", dir)
			fmt.Fprintf(out, MsgConfigWritten+"\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(&view.List{
				Title: "Locations",
				Items: []view.Item{
					{Name: "user", Detail: a.userConfigFile()},
					{Name: "workspace", Detail: a.paths.WorkspaceConfigPath()},
					{Name: "cache", Detail: a.paths.CacheDir()},
					{Name: "log", Detail: a.paths.LogFilePath()},
				},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: MsgConfigGenShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
			return err
		},
	})

	return cmd
}
