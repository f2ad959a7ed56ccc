// Package events defines event types for workflow lifecycle notifications.
package events

import (
	"time"

	"github.com/flowdeck/flowdeck/pkg/models"
)

type EventType string

const Topic = "flowdeck.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowCreatedEvent EventType = "workflow.created"
	WorkflowUpdatedEvent EventType = "workflow.updated"
	WorkflowDeletedEvent EventType = "workflow.deleted"

	// The two phases of an optimistic status change. Applied fires when
	// the local collection is updated, before the persistence write
	// resolves; RolledBack fires only if that write fails.
	WorkflowStatusAppliedEvent    EventType = "workflow.status.applied"
	WorkflowStatusRolledBackEvent EventType = "workflow.status.rolledback"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	UserID     string    `json:"user_id,omitempty"`
}

type WorkflowCreated struct {
	BaseEvent

	Name         string `json:"name"`
	FromTemplate bool   `json:"from_template,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
}

func (e WorkflowCreated) GetType() EventType {
	return WorkflowCreatedEvent
}

type WorkflowUpdated struct {
	BaseEvent

	Name string `json:"name"`
}

func (e WorkflowUpdated) GetType() EventType {
	return WorkflowUpdatedEvent
}

type WorkflowDeleted struct {
	BaseEvent
}

func (e WorkflowDeleted) GetType() EventType {
	return WorkflowDeletedEvent
}

type WorkflowStatusApplied struct {
	BaseEvent

	PreviousStatus models.WorkflowStatus `json:"previous_status"`
	NewStatus      models.WorkflowStatus `json:"new_status"`
}

func (e WorkflowStatusApplied) GetType() EventType {
	return WorkflowStatusAppliedEvent
}

type WorkflowStatusRolledBack struct {
	BaseEvent

	RestoredStatus models.WorkflowStatus `json:"restored_status"`
	FailedStatus   models.WorkflowStatus `json:"failed_status"`
	Reason         string                `json:"reason"`
}

func (e WorkflowStatusRolledBack) GetType() EventType {
	return WorkflowStatusRolledBackEvent
}
