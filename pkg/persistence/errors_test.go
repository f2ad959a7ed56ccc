package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowError_WrapsSentinel(t *testing.T) {
	err := NewWorkflowError("GetByID", "wf-1", ErrWorkflowNotFound)

	assert.True(t, IsWorkflowNotFound(err))
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
	assert.Contains(t, err.Error(), "GetByID")
	assert.Contains(t, err.Error(), "wf-1")
}

func TestWorkflowError_DoubleWrapped(t *testing.T) {
	inner := NewWorkflowError("GetByID", "wf-1", ErrWorkflowNotFound)
	outer := fmt.Errorf("fetch: %w", inner)

	assert.True(t, IsWorkflowNotFound(outer))
}

func TestIsWorkflowNotFound_OtherError(t *testing.T) {
	assert.False(t, IsWorkflowNotFound(errors.New("connection refused")))
	assert.False(t, IsWorkflowNotFound(nil))
}

func TestIsAPIKeyNotFound(t *testing.T) {
	assert.True(t, IsAPIKeyNotFound(fmt.Errorf("delete: %w", ErrAPIKeyNotFound)))
	assert.False(t, IsAPIKeyNotFound(ErrWorkflowNotFound))
}
