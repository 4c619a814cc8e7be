// Package main provides the Campaigner API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/eventbus"
	"github.com/homespark/campaigner/pkg/persistence"
	"github.com/homespark/campaigner/pkg/properties"
	"github.com/homespark/campaigner/pkg/resolver"
	"github.com/homespark/campaigner/pkg/services"
	"github.com/homespark/campaigner/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	templates   creative.Catalog
	source      properties.Source
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	templates creative.Catalog,
	source properties.Source,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		templates:   templates,
		source:      source,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	automationService := services.NewAutomation(a.persistence, a.templates)
	executionService := services.NewExecution(a.persistence, a.eventBus, a.logger)
	campaignResolver := resolver.New(a.source, a.templates, a.logger)

	handlers := web.NewAPIHandlers(automationService, executionService, campaignResolver, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Campaigner API")
	})

	automations := app.Group("/automations")
	automations.Get("/", handlers.GetAutomations)
	automations.Post("/", handlers.CreateAutomation)
	automations.Get("/:id", handlers.GetAutomation)
	automations.Patch("/:id", handlers.UpdateAutomation)
	automations.Delete("/:id", handlers.DeleteAutomation)
	automations.Post("/:id/validate", handlers.ValidateAutomation)
	automations.Post("/:id/resolve", handlers.ResolveCampaign)

	// Execution endpoints:
	automations.Post("/:id/executions", handlers.FireExecution)
	automations.Get("/:id/executions", handlers.ListExecutions)

	executions := app.Group("/executions")
	executions.Get("/:id", handlers.GetExecution)
	executions.Post("/:id/pause", handlers.PauseExecution)
	executions.Post("/:id/resume", handlers.ResumeExecution)
	executions.Post("/:id/complete", handlers.CompleteExecution)
	executions.Post("/:id/fail", handlers.FailExecution)
	executions.Post("/:id/advance", handlers.AdvanceExecution)
	executions.Post("/:id/node-errors", handlers.RecordNodeError)

	app.Get("/triggers/:kind/policy", handlers.GetTriggerPolicy)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
