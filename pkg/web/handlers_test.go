package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/apikeys"
	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/channels/gochannel"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/generation"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/persistence/file"
	"github.com/flowdeck/flowdeck/pkg/web"
)

const testToken = "valid-token"

type stubAuthClient struct{}

func (stubAuthClient) SessionFromToken(_ context.Context, token string) (*auth.Session, error) {
	if token != testToken {
		return nil, auth.ErrNotAuthenticated
	}

	return &auth.Session{
		UserID:    "user-1",
		Email:     "user@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (stubAuthClient) SignOut(context.Context, string) error {
	return nil
}

type stubGenerator struct {
	result *generation.Result
	err    error
}

func (g stubGenerator) Generate(_ context.Context, prompt string) (*generation.Result, error) {
	if g.err != nil {
		return nil, g.err
	}

	if g.result != nil {
		return g.result, nil
	}

	return &generation.Result{
		Name:        "Generated Workflow",
		Description: "Generated from: " + prompt,
		Nodes:       []*models.WorkflowNode{},
	}, nil
}

func setupTestApp(t *testing.T, generator generation.Client) (*fiber.App, persistence.Persistence) {
	t.Helper()

	persist := file.NewPersistence(t.TempDir())

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewStdLogger(false, false))
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	logger := slog.Default()
	stores := web.NewSessionStores(persist.WorkflowRepository(), bus, logger)
	keyService := apikeys.NewService(persist.APIKeyRepository(), logger)

	handlers := web.NewAPIHandlers(stores, stubAuthClient{}, generator, keyService, persist, validator.New(), logger)

	app := fiber.New()
	app.Use(handlers.ResolveSession)

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

	app.Get("/health", handlers.HealthCheck)

	return app, persist
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, authenticated bool) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func createWorkflow(t *testing.T, app *fiber.App, name string) models.Workflow {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/workflows", web.CreateWorkflowRequest{
		Name:   name,
		Status: "active",
		Nodes:  []*models.WorkflowNode{},
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow

	decodeBody(t, resp, &created)

	return created
}

func TestGetWorkflowsRequiresSession(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodGet, "/workflows", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWorkflowLifecycle(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	created := createWorkflow(t, app, "My First Workflow")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)

	resp := doRequest(t, app, http.MethodGet, "/workflows", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Workflows []models.Workflow `json:"workflows"`
		Source    string            `json:"source"`
	}

	decodeBody(t, resp, &listing)
	assert.Equal(t, "live", listing.Source)
	require.Len(t, listing.Workflows, 1)
	assert.Equal(t, "My First Workflow", listing.Workflows[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/workflows/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPatch, "/workflows/"+created.ID, fiber.Map{
		"description": "now with a description",
	}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Workflow

	decodeBody(t, resp, &updated)
	assert.Equal(t, "now with a description", updated.Description)

	resp = doRequest(t, app, http.MethodDelete, "/workflows/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/workflows/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateWorkflowValidation(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/workflows", fiber.Map{"name": "ab"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWorkflowsFilterAndSort(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	createWorkflow(t, app, "Email Newsletter")
	createWorkflow(t, app, "Data Backup")

	resp := doRequest(t, app, http.MethodGet, "/workflows?query=newsletter", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Workflows []models.Workflow `json:"workflows"`
	}

	decodeBody(t, resp, &listing)
	require.Len(t, listing.Workflows, 1)
	assert.Equal(t, "Email Newsletter", listing.Workflows[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/workflows?sort=alphabetical", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &listing)
	require.Len(t, listing.Workflows, 2)
	assert.Equal(t, "Data Backup", listing.Workflows[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/workflows?sort=popularity", nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetWorkflowStatus(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	created := createWorkflow(t, app, "Toggle Me")

	resp := doRequest(t, app, http.MethodPost, "/workflows/"+created.ID+"/status", web.SetStatusRequest{
		Status: "paused",
	}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Workflow

	decodeBody(t, resp, &updated)
	assert.Equal(t, models.WorkflowStatusPaused, updated.Status)

	resp = doRequest(t, app, http.MethodPost, "/workflows/"+created.ID+"/status", fiber.Map{
		"status": "archived",
	}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateWorkflow(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/workflows/generate", web.GenerateWorkflowRequest{
		Prompt: "notify me about new leads",
	}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Workflow generation.Result `json:"workflow"`
	}

	decodeBody(t, resp, &body)
	assert.Equal(t, "Generated Workflow", body.Workflow.Name)
}

func TestGenerateWorkflowFailure(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{err: generation.ErrGenerationFailed})

	resp := doRequest(t, app, http.MethodPost, "/workflows/generate", web.GenerateWorkflowRequest{
		Prompt: "anything",
	}, true)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestGenerateWorkflowEmptyPrompt(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{err: generation.ErrEmptyPrompt})

	resp := doRequest(t, app, http.MethodPost, "/workflows/generate", fiber.Map{"prompt": " "}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerationSampleIsPublic(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodGet, "/generation/sample", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Workflow generation.Result `json:"workflow"`
	}

	decodeBody(t, resp, &body)
	assert.Equal(t, "New Lead Notification", body.Workflow.Name)
	assert.Len(t, body.Workflow.Nodes, 2)
}

func TestGetTemplates(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodGet, "/templates", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Templates  []models.WorkflowTemplate `json:"templates"`
		Categories []string                  `json:"categories"`
	}

	decodeBody(t, resp, &body)
	assert.Len(t, body.Templates, 6)
	assert.Len(t, body.Categories, 8)

	resp = doRequest(t, app, http.MethodGet, "/templates?category=Sales", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &body)
	require.Len(t, body.Templates, 1)
	assert.Equal(t, "Lead Capture Notification", body.Templates[0].Name)
}

func TestUseTemplate(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/templates/template-2/use", nil, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow

	decodeBody(t, resp, &created)
	assert.Equal(t, "Daily Task Summary", created.Name)
	assert.Equal(t, models.WorkflowStatusActive, created.Status)
	assert.True(t, created.FromTemplate)
	assert.Equal(t, "template-2", created.TemplateID)
	assert.Len(t, created.Nodes, 4)
	assert.Equal(t, "Create a workflow for: "+created.Description, created.Prompt)
}

func TestUseTemplateRequiresSession(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/templates/template-2/use", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUseTemplateNotFound(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/templates/template-99/use", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIKeyLifecycle(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/apikeys", web.CreateAPIKeyRequest{
		Name:    "Slack Bot",
		Service: "slack",
		Key:     "xoxb-secret",
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.APIKey

	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)

	resp = doRequest(t, app, http.MethodGet, "/apikeys", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		APIKeys []models.APIKey `json:"api_keys"`
	}

	decodeBody(t, resp, &listing)
	require.Len(t, listing.APIKeys, 1)
	assert.Equal(t, "Slack Bot", listing.APIKeys[0].Name)

	resp = doRequest(t, app, http.MethodDelete, "/apikeys/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/apikeys/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIKeyValidation(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodPost, "/apikeys", fiber.Map{"name": "Missing Fields"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProblemResponseShape(t *testing.T) {
	app, _ := setupTestApp(t, stubGenerator{})

	resp := doRequest(t, app, http.MethodGet, "/workflows/does-not-exist", nil, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var problem struct {
		Type   string `json:"type"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}

	decodeBody(t, resp, &problem)
	assert.Equal(t, "not_found", problem.Type)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.NotEmpty(t, problem.Detail)
}
