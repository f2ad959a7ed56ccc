package postgresql

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

// Query-builder tests run without a database.

func TestWorkflowRepository_buildListQuery_Defaults(t *testing.T) {
	repo := &WorkflowRepository{db: nil, logger: slog.Default()}

	query, args, err := repo.buildListQuery(persistence.ListWorkflowsOptions{})
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "LIMIT")
}

func TestWorkflowRepository_buildListQuery_Filters(t *testing.T) {
	repo := &WorkflowRepository{db: nil, logger: slog.Default()}

	status := models.WorkflowStatusActive
	query, args, err := repo.buildListQuery(persistence.ListWorkflowsOptions{
		UserID: "user-1",
		Status: &status,
		Order:  "asc",
		Limit:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"user-1", "active", 3}, args)
	assert.Contains(t, query, "user_id = $1")
	assert.Contains(t, query, "status = $2")
	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.Contains(t, query, "LIMIT $3")
}

func TestWorkflowRepository_buildListQuery_InvalidOrder(t *testing.T) {
	repo := &WorkflowRepository{db: nil, logger: slog.Default()}

	tests := []struct {
		name  string
		order string
	}{
		{name: "unknown direction", order: "upward"},
		{name: "sql injection attempt", order: "desc; DROP TABLE workflows; --"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := repo.buildListQuery(persistence.ListWorkflowsOptions{Order: tt.order})
			assert.ErrorIs(t, err, persistence.ErrInvalidOrder)
		})
	}
}
