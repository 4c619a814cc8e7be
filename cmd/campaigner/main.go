// Package main provides the campaigner authoring CLI.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/homespark/campaigner/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "campaigner",
		Usage:                 "Author and validate marketing automations offline",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			ValidateCommand(),
			PolicyCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
