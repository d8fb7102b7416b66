// Command catalogctl is the operator tool for the jewelry catalog: slugs,
// storefront routes, the hierarchy held by a backend and CSV imports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"jewelry-storefront/internal/config"
)

func main() {
	cfg := config.FromEnv()
	if err := newApp(cfg, os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cfg config.Config, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "catalogctl",
		Usage:  "inspect and load the jewelry catalog",
		Writer: out,
		Commands: []*cli.Command{
			slugCommand(),
			routeCommand(),
			treeCommand(cfg),
			importCommand(cfg),
			sessionKeyCommand(),
		},
	}
}
