package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/otelhelper"
)

const (
	defaultName        = "New Workflow"
	defaultDescription = "Generated from your prompt"
)

// HTTPClient calls an external generation service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewHTTPClient(baseURL string, logger *slog.Logger, tracer trace.Tracer) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger.With("module", "generation"),
		tracer:  tracer,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Workflow Result `json:"workflow"`
}

// Generate sends the prompt to the service and normalizes the draft it
// returns. Missing name and description get placeholder defaults, a missing
// node list becomes an empty one. A malformed response is treated the same
// as a failed request.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "generation.generate",
		attribute.Int(otelhelper.PromptLengthKey, len(prompt)),
	)
	defer span.End()

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: service returned status %d", ErrGenerationFailed, resp.StatusCode)
		otelhelper.SetError(span, err)

		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if err := validateResponse(payload); err != nil {
		c.logger.WarnContext(ctx, "Generation service returned a malformed draft", "error", err)
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	result := envelope.Workflow

	if strings.TrimSpace(result.Name) == "" {
		result.Name = defaultName
	}

	if strings.TrimSpace(result.Description) == "" {
		result.Description = defaultDescription
	}

	if result.Nodes == nil {
		result.Nodes = []*models.WorkflowNode{}
	}

	result.Prompt = prompt

	span.SetAttributes(attribute.String(otelhelper.WorkflowNameKey, result.Name))

	return &result, nil
}
