// Package models defines the core domain models for automation workflow records.
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow record.
type WorkflowStatus string

const (
	WorkflowStatusActive WorkflowStatus = "active"
	WorkflowStatusPaused WorkflowStatus = "paused"
	WorkflowStatusDraft  WorkflowStatus = "draft"
	WorkflowStatusError  WorkflowStatus = "error"
)

// WorkflowStatuses lists every valid status, in declaration order.
var WorkflowStatuses = []WorkflowStatus{
	WorkflowStatusActive,
	WorkflowStatusPaused,
	WorkflowStatusDraft,
	WorkflowStatusError,
}

// Valid reports whether s is a member of the closed status set.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case WorkflowStatusActive, WorkflowStatusPaused, WorkflowStatusDraft, WorkflowStatusError:
		return true
	default:
		return false
	}
}

// Workflow is one automation workflow record. A workflow is persisted
// when ID is non-empty (assigned by the persistence layer, owned by
// exactly one user) and transient otherwise; promotion happens exactly
// once, through the store's Insert.
type Workflow struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"        validate:"required,min=3"`
	Description string          `json:"description"`
	Nodes       []*WorkflowNode `json:"nodes"`
	Status      WorkflowStatus  `json:"status"`

	// Prompt is the free-text input that produced this workflow via
	// generation. Empty for hand-built or template-sourced workflows.
	Prompt string `json:"prompt,omitempty"`

	// Provenance, server-assigned. UpdatedAt is the only field the
	// client side touches, on explicit edit-save.
	ExecutionCount int        `json:"execution_count"`
	LastExecuted   *time.Time `json:"last_executed,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Template provenance, set only during template instantiation.
	FromTemplate bool   `json:"from_template,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`

	UserID string `json:"user_id,omitempty"`
}

// Persisted reports whether the record has a server-assigned identity.
func (w *Workflow) Persisted() bool {
	return w.ID != ""
}

// Clone returns a deep copy. The store hands copies out so callers can
// never mutate the authoritative collection in place.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}

	clone := *w

	if w.Nodes != nil {
		clone.Nodes = make([]*WorkflowNode, len(w.Nodes))
		for i, node := range w.Nodes {
			nodeCopy := *node

			if node.Config != nil {
				nodeCopy.Config = make(map[string]any, len(node.Config))
				for k, v := range node.Config {
					nodeCopy.Config[k] = v
				}
			}

			if node.Next != nil {
				nodeCopy.Next = append([]string(nil), node.Next...)
			}

			clone.Nodes[i] = &nodeCopy
		}
	}

	if w.LastExecuted != nil {
		lastExecuted := *w.LastExecuted
		clone.LastExecuted = &lastExecuted
	}

	return &clone
}
