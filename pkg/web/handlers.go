// Package web provides HTTP handlers and REST API endpoints for the workflow
// dashboard backend.
package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/flowdeck/flowdeck/pkg/apikeys"
	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/generation"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/store"
	"github.com/flowdeck/flowdeck/pkg/templates"
	"github.com/flowdeck/flowdeck/pkg/view"
)

type APIHandlers struct {
	stores      *SessionStores
	auth        auth.Client
	generator   generation.Client
	apiKeys     *apikeys.Service
	persistence persistence.Persistence
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewAPIHandlers(
	stores *SessionStores,
	authClient auth.Client,
	generator generation.Client,
	apiKeyService *apikeys.Service,
	persist persistence.Persistence,
	validate *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		stores:      stores,
		auth:        authClient,
		generator:   generator,
		apiKeys:     apiKeyService,
		persistence: persist,
		validator:   validate,
		logger:      logger.With("module", "web"),
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	sess := sessionFrom(c)

	result, err := h.stores.For(sess).FetchAll(c.Context(), sess)
	if err != nil {
		return handleServiceError(c, err)
	}

	opts := view.Options{
		Search: c.Query("query"),
		Status: c.Query("status"),
		Sort:   view.SortOrder(c.Query("sort")),
	}

	visible, err := view.Apply(result.Workflows, opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	response := fiber.Map{
		"workflows": visible,
		"source":    result.Source,
		"filters": fiber.Map{
			"query":  opts.Search,
			"status": opts.Status,
			"sort":   opts.Sort,
		},
	}

	if result.Reason != nil {
		response["degraded_reason"] = result.Reason.Error()
	}

	return c.JSON(response)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	sess := sessionFrom(c)

	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	draft := models.Workflow{
		Name:        req.Name,
		Description: req.Description,
		Nodes:       req.Nodes,
		Status:      models.WorkflowStatus(req.Status),
		Prompt:      req.Prompt,
	}

	if draft.Nodes == nil {
		draft.Nodes = []*models.WorkflowNode{}
	}

	created, err := h.loadedStore(c, sess).Insert(c.Context(), sess, draft)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	sess := sessionFrom(c)

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	for _, workflow := range h.loadedStore(c, sess).Workflows() {
		if workflow.ID == id {
			return c.JSON(workflow)
		}
	}

	return notFound(c, "workflow not found")
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	sess := sessionFrom(c)

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	patch := store.Patch{
		Name:        req.Name,
		Description: req.Description,
		Nodes:       req.Nodes,
		Prompt:      req.Prompt,
	}

	if req.Status != nil {
		status := models.WorkflowStatus(*req.Status)
		patch.Status = &status
	}

	updated, err := h.loadedStore(c, sess).Update(c.Context(), sess, id, patch)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	sess := sessionFrom(c)

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.loadedStore(c, sess).Remove(c.Context(), sess, id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) SetWorkflowStatus(c fiber.Ctx) error {
	sess := sessionFrom(c)

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req SetStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.loadedStore(c, sess).SetStatus(c.Context(), sess, id, models.WorkflowStatus(req.Status))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) GenerateWorkflow(c fiber.Ctx) error {
	var req GenerateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.generator.Generate(c.Context(), req.Prompt)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"workflow": result})
}

func (h *APIHandlers) GenerationSample(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"workflow": generation.Sample()})
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	filtered := templates.Filter(c.Query("query"), models.TemplateCategory(c.Query("category")))

	return c.JSON(fiber.Map{
		"templates":  filtered,
		"categories": models.TemplateCategories,
	})
}

func (h *APIHandlers) UseTemplate(c fiber.Ctx) error {
	sess := sessionFrom(c)

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	template, ok := templates.ByID(id)
	if !ok {
		return notFound(c, "template not found")
	}

	draft := templates.Instantiate(template, sess.UserID)

	created, err := h.loadedStore(c, sess).Insert(c.Context(), sess, draft)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetAPIKeys(c fiber.Ctx) error {
	keys, err := h.apiKeys.List(c.Context(), sessionFrom(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"api_keys": keys})
}

func (h *APIHandlers) CreateAPIKey(c fiber.Ctx) error {
	var req CreateAPIKeyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.apiKeys.Create(c.Context(), sessionFrom(c), models.APIKey{
		Name:    req.Name,
		Service: req.Service,
		Key:     req.Key,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) DeleteAPIKey(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "API key ID is required")
	}

	if err := h.apiKeys.Delete(c.Context(), sessionFrom(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) SignOut(c fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return notAuthenticated(c)
	}

	if err := h.auth.SignOut(c.Context(), token); err != nil {
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Flowdeck API is healthy"
	httpStatus := http.StatusOK

	var detail string
	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		status = "unhealthy"
		message = "Flowdeck API is unhealthy"
		httpStatus = http.StatusInternalServerError
		detail = err.Error()
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": detail,
		},
		"timestamp": time.Now().UTC(),
	})
}

// loadedStore returns the session's store, fetching the collection first if
// this is the store's first use.
func (h *APIHandlers) loadedStore(c fiber.Ctx, sess *auth.Session) *store.Store {
	s := h.stores.For(sess)

	if s.State() == store.StateUninitialized {
		if _, err := s.FetchAll(c.Context(), sess); err != nil {
			h.logger.WarnContext(c.Context(), "Initial collection fetch failed", "error", err)
		}
	}

	return s
}
