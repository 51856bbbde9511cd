package main

import (
	"fmt"
	"os"

	"github.com/devopsctl/devops-cli/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	if err := doc.GenMan(cli.NewRootCmd(), cli.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
