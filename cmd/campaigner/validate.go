package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence/file"
	"github.com/homespark/campaigner/pkg/services"
)

// ErrAutomationInvalid signals a failed validation so the CLI exits non-zero.
var ErrAutomationInvalid = fmt.Errorf("automation is invalid")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate an automation definition file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the automation JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "templates-path",
				Usage:   "Path to the creative template catalog JSON file",
				Sources: cli.EnvVars("TEMPLATES_PATH"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return runValidate(ctx, command.String("file"), command.String("templates-path"))
		},
	}
}

func runValidate(ctx context.Context, path, templatesPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read automation file: %w", err)
	}

	var automation models.Automation
	if err := json.Unmarshal(data, &automation); err != nil {
		return fmt.Errorf("failed to parse automation file: %w", err)
	}

	templates, err := creative.LoadCatalog(templatesPath)
	if err != nil {
		return err
	}

	// The service only needs persistence for CRUD; validation runs without
	// touching it, so a throwaway directory store is enough.
	store := file.NewPersistence(os.TempDir())
	service := services.NewAutomation(store, templates)

	fieldErrors, err := service.Validate(ctx, &automation)
	if err != nil {
		return err
	}

	if len(fieldErrors) == 0 {
		fmt.Println("Automation is valid")

		return nil
	}

	for _, fieldError := range fieldErrors {
		fmt.Printf("%s: %s\n", fieldError.Field, fieldError.Message)
	}

	return fmt.Errorf("%w: %d problem(s) found", ErrAutomationInvalid, len(fieldErrors))
}
