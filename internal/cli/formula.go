package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/download"
	"github.com/devopsctl/devops-cli/pkg/formula"
	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
)

// formulaPath is the --file value or the configured formula file
func (a *app) formulaPath(file string) string {
	if file == "" {
		file = a.loaded.Formula.File
	}
	return a.resolve(file)
}

func newFormulaCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "formula",
		Short:   MsgFormulaShort,
		Long:    MsgFormulaLong,
		Example: MsgFormulaExample,
		GroupID: groupRelease,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", MsgFlagFile)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: MsgFormulaValShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formula.Load(a.formulaPath(file))
			if err != nil {
				return fmt.Errorf(MsgErrFormula, "validate", err)
			}
			if problems := f.Problems(); len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
				}
				return fmt.Errorf(MsgErrFormula, "validate", f.Validate())
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgFormulaValid+"\n",
				f.Name, f.Version, strings.Join(f.OrderedPlatforms(), ", "))
			return nil
		},
	})

	var output string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: MsgFormulaRendShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formula.Load(a.formulaPath(file))
			if err != nil {
				return fmt.Errorf(MsgErrFormula, "render", err)
			}
			if output == "" {
				if err := f.Render(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf(MsgErrFormula, "render", err)
				}
				return nil
			}

			var buf bytes.Buffer
			if err := f.Render(&buf); err != nil {
				return fmt.Errorf(MsgErrFormula, "render", err)
			}
			if err := renameio.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf(MsgErrFormula, "render", err)
			}
			return nil
		},
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.AddCommand(renderCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "bump <version>",
		Short: MsgFormulaBumpShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.formulaPath(file)
			f, err := formula.Load(path)
			if err != nil {
				return fmt.Errorf(MsgErrFormula, "bump", err)
			}
			if err := f.Bump(commandContext(cmd), a.downloader(), args[0], formula.BumpOptions{}); err != nil {
				return fmt.Errorf(MsgErrFormula, "bump", err)
			}

			if a.dryRun {
				data, err := f.Marshal()
				if err != nil {
					return fmt.Errorf(MsgErrFormula, "bump", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := f.Save(path); err != nil {
				return fmt.Errorf(MsgErrFormula, "bump", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgFormulaBumped+"\n", f.Name, f.Version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "checksum <file>...",
		Short: MsgFormulaSumShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				sum, err := download.FileChecksum(path)
				if err != nil {
					return fmt.Errorf(MsgErrFormula, "checksum", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
			}
			return nil
		},
	})

	return cmd
}
