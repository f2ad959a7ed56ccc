// Package main provides the Flowdeck API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/flowdeck/flowdeck/pkg/apikeys"
	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/generation"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	authClient  auth.Client
	generator   generation.Client
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persist persistence.Persistence,
	authClient auth.Client,
	generator generation.Client,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persist,
		authClient:  authClient,
		generator:   generator,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	stores := web.NewSessionStores(a.persistence.WorkflowRepository(), a.eventBus, a.logger)
	keyService := apikeys.NewService(a.persistence.APIKeyRepository(), a.logger)

	handlers := web.NewAPIHandlers(stores, a.authClient, a.generator, keyService, a.persistence, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))
	app.Use(handlers.ResolveSession)

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flowdeck API")
	})

	w := app.Group("/workflows", handlers.RequireSession)
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Post("/generate", handlers.GenerateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/status", handlers.SetWorkflowStatus)

	app.Get("/generation/sample", handlers.GenerationSample)

	app.Get("/templates", handlers.GetTemplates)
	app.Post("/templates/:id/use", handlers.UseTemplate, handlers.RequireSession)

	k := app.Group("/apikeys", handlers.RequireSession)
	k.Get("/", handlers.GetAPIKeys)
	k.Post("/", handlers.CreateAPIKey)
	k.Delete("/:id", handlers.DeleteAPIKey)

	app.Post("/auth/signout", handlers.SignOut)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
