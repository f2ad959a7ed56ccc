package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/flowdeck/flowdeck/pkg/apikeys"
	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/generation"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/store"
	"github.com/flowdeck/flowdeck/pkg/view"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notAuthenticated(c fiber.Ctx) error {
	problem := problems.NewStatusProblem(401).
		WithInstance(c.Path()).
		WithType("not_authenticated").
		WithDetail("a valid session is required")

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func generationFailed(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(502).
		WithInstance(c.Path()).
		WithType("generation_failed").
		WithDetail(err.Error())

	return c.Status(fiber.StatusBadGateway).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError maps store, view, generation and persistence errors to
// their problem responses.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case auth.IsNotAuthenticated(err):
		return notAuthenticated(c)

	case errors.Is(err, store.ErrInvalidDraft),
		errors.Is(err, apikeys.ErrInvalidKey),
		errors.Is(err, view.ErrInvalidSort),
		errors.Is(err, view.ErrInvalidStatus),
		errors.Is(err, generation.ErrEmptyPrompt):
		return badRequest(c, err.Error())

	case persistence.IsWorkflowNotFound(err):
		return notFound(c, "workflow not found")

	case persistence.IsAPIKeyNotFound(err):
		return notFound(c, "api key not found")

	case generation.IsGenerationFailed(err):
		return generationFailed(c, err)

	default:
		return internalError(c, err)
	}
}
