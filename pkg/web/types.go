// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/flowdeck/flowdeck/pkg/models"

// CreateWorkflowRequest represents the request body for saving a new workflow.
type CreateWorkflowRequest struct {
	Name        string                 `json:"name"        validate:"required,min=3"`
	Description string                 `json:"description"`
	Nodes       []*models.WorkflowNode `json:"nodes"`
	Status      string                 `json:"status,omitempty" validate:"omitempty,oneof=active paused draft error"`
	Prompt      string                 `json:"prompt,omitempty"`
}

// UpdateWorkflowRequest represents the request body for updating an existing
// workflow. All fields are optional to support partial updates.
type UpdateWorkflowRequest struct {
	Name        *string                `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string                `json:"description,omitempty"`
	Nodes       []*models.WorkflowNode `json:"nodes,omitempty"`
	Status      *string                `json:"status,omitempty"      validate:"omitempty,oneof=active paused draft error"`
	Prompt      *string                `json:"prompt,omitempty"`
}

// SetStatusRequest represents the request body for the status toggle.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused draft error"`
}

// GenerateWorkflowRequest represents the request body for NL generation.
type GenerateWorkflowRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// CreateAPIKeyRequest represents the request body for storing a credential.
type CreateAPIKeyRequest struct {
	Name    string `json:"name"    validate:"required,min=1"`
	Service string `json:"service" validate:"required,min=1"`
	Key     string `json:"key"     validate:"required,min=1"`
}
