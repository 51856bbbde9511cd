package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devopsctl/devops-cli/internal/cli"
	"github.com/spf13/cobra"
)

// generators maps each completion file name to the shell generator writing it
var generators = map[string]func(*cobra.Command, io.Writer) error{
	"devops-cli.bash": func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
	"_devops-cli":     func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
	"devops-cli.fish": func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"devops-cli.ps1":  func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) },
}

func main() {
	dir := "completions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd()
	for name, gen := range generators {
		path := filepath.Join(dir, name)
		if err := writeCompletion(rootCmd, path, gen); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Println(path)
	}
}

func writeCompletion(rootCmd *cobra.Command, path string, gen func(*cobra.Command, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(rootCmd, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
