// Package persistence provides the data storage abstraction for workflow
// and API key records.
package persistence

import (
	"context"

	"github.com/flowdeck/flowdeck/pkg/models"
)

// ListWorkflowsOptions narrows and orders a workflow listing. The
// persistence layer only filters by equality and orders by created_at;
// search and presentation sorting happen in the view pipeline.
type ListWorkflowsOptions struct {
	// UserID filters to records owned by this user. Empty means all.
	UserID string

	// Status filters to records with exactly this status. Nil means all.
	Status *models.WorkflowStatus

	// Order is "asc" or "desc" by created_at; defaults to "desc".
	Order string

	// Limit caps the result size. Zero means no limit.
	Limit int
}

type WorkflowRepository interface {
	List(ctx context.Context, opts ListWorkflowsOptions) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

type APIKeyRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.APIKey, error)
	GetByID(ctx context.Context, id string) (*models.APIKey, error)
	Save(ctx context.Context, key *models.APIKey) error
	Delete(ctx context.Context, id string) error
}

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	APIKeyRepository() APIKeyRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
