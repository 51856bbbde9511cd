package main

import (
	"fmt"
	"os"

	"github.com/devopsctl/devops-cli/internal/cli"
	"github.com/devopsctl/devops-cli/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := cli.Execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorLine(err))
		os.Exit(1)
	}
}
