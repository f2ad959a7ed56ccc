// Package generation provides the client for the natural language workflow
// generation service. The service turns a free-form description into a draft
// workflow with a name, description and node list.
package generation

import (
	"context"
	"errors"

	"github.com/flowdeck/flowdeck/pkg/models"
)

var (
	// ErrEmptyPrompt is returned before any request is made when the prompt
	// is empty or whitespace only.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrGenerationFailed wraps upstream failures so callers can map them
	// to a single error kind.
	ErrGenerationFailed = errors.New("workflow generation failed")
)

// Result is the draft produced by the generation service. It is never
// persisted directly; the caller reviews it and saves through the store.
type Result struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Nodes       []*models.WorkflowNode `json:"nodes"`

	// Prompt is the trimmed prompt the draft was generated from, carried so
	// the caller can keep it as provenance when saving.
	Prompt string `json:"prompt,omitempty"`
}

type Client interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
}

func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}
