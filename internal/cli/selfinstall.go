package cli

import (
	"fmt"
	"runtime"

	"github.com/devopsctl/devops-cli/pkg/formula"
	"github.com/devopsctl/devops-cli/pkg/install"
	"github.com/spf13/cobra"
)

func newSelfInstallCmd(a *app) *cobra.Command {
	var (
		file      string
		binDir    string
		goos      string
		skipSmoke bool
	)

	cmd := &cobra.Command{
		Use:     "self-install",
		Short:   MsgSelfInstallShort,
		Long:    MsgSelfInstallLong,
		Args:    cobra.NoArgs,
		GroupID: groupRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formula.Load(a.formulaPath(file))
			if err != nil {
				return fmt.Errorf(MsgErrSelfInstall, err)
			}
			if binDir == "" {
				binDir = a.paths.BinDir()
			}

			if a.dryRun {
				artifact, err := f.Platform(goos)
				if err != nil {
					return fmt.Errorf(MsgErrSelfInstall, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] install %s from %s into %s\n", f.Binary, artifact.URL, binDir)
				return nil
			}

			installer := &install.Installer{
				BinDir:   binDir,
				CacheDir: a.paths.DownloadsDir(),
				Download: a.downloader(),
			}
			if !skipSmoke {
				installer.Runner = a.runner(cmd)
			}

			res, err := installer.Install(commandContext(cmd), f, goos)
			if err != nil {
				return fmt.Errorf(MsgErrSelfInstall, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgInstalled+"\n", f.Name, res.Version, res.Binary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	cmd.Flags().StringVar(&binDir, "bin-dir", "", MsgFlagBinDir)
	cmd.Flags().StringVar(&goos, "os", runtime.GOOS, MsgFlagOS)
	cmd.Flags().BoolVar(&skipSmoke, "skip-smoke-test", false, MsgFlagSkipSmoke)
	_ = cmd.RegisterFlagCompletionFunc("os", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formula.SupportedOS(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
