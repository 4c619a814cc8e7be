package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/web"
)

func PolicyCommand() *cli.Command {
	return &cli.Command{
		Name:      "policy",
		Aliases:   []string{"p"},
		Usage:     "Show the configuration policy for a trigger kind",
		ArgsUsage: "<trigger-kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "update-type",
				Usage: "Update type for the property_updated kind (e.g. discount)",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			kind := command.Args().First()
			if kind == "" {
				return fmt.Errorf("trigger kind is required")
			}

			trigger := models.Trigger{
				Kind: models.TriggerKind(kind),
				Config: models.TriggerConfig{
					UpdateType: command.String("update-type"),
				},
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(web.TransformTriggerPolicyResponse(trigger))
		},
	}
}
