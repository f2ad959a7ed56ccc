// Package store holds the authoritative in-memory workflow collection for an
// active session and keeps it synchronized with the persistence collaborator.
// Reads degrade to a fixed demo dataset when persistence is unreachable;
// writes never do.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

// ErrInvalidDraft is returned when an inserted or patched workflow fails
// validation.
var ErrInvalidDraft = errors.New("invalid workflow draft")

type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateDemoFallback  State = "demo_fallback"
)

type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// FetchResult carries the collection together with its provenance. A degraded
// read is tagged SourceDemo and keeps the failure that caused it in Reason,
// so callers can surface the degradation instead of hiding it.
type FetchResult struct {
	Workflows []*models.Workflow
	Source    Source
	Reason    error
}

// Store is scoped to one session and is safe for concurrent use. Concurrent
// mutations are serialized; the last write wins.
type Store struct {
	mu        sync.Mutex
	repo      persistence.WorkflowRepository
	bus       eventbus.EventBus
	logger    *slog.Logger
	validator *validator.Validate

	state     State
	workflows []*models.Workflow
}

func NewStore(repo persistence.WorkflowRepository, bus eventbus.EventBus, logger *slog.Logger) *Store {
	return &Store{
		repo:      repo,
		bus:       bus,
		logger:    logger.With("module", "store"),
		validator: validator.New(),
		state:     StateUninitialized,
	}
}

// State returns the store's current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// FetchAll loads the session's workflows newest first and replaces the local
// collection. Persistence failure is not an error for the fetch itself: the
// store switches to the demo dataset and tags the result accordingly.
func (s *Store) FetchAll(ctx context.Context, sess *auth.Session) (*FetchResult, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	workflows, err := s.repo.List(ctx, persistence.ListWorkflowsOptions{
		UserID: sess.UserID,
		Order:  "desc",
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Workflow fetch failed, serving demo data", "user_id", sess.UserID, "error", err)

		s.mu.Lock()
		s.state = StateDemoFallback
		s.workflows = demoWorkflows()
		s.mu.Unlock()

		return &FetchResult{Workflows: demoWorkflows(), Source: SourceDemo, Reason: err}, nil
	}

	s.mu.Lock()
	s.state = StateReady
	s.workflows = workflows
	result := s.snapshot()
	s.mu.Unlock()

	return &FetchResult{Workflows: result, Source: SourceLive}, nil
}

// Workflows returns a copy of the current collection without touching the
// collaborator.
func (s *Store) Workflows() []*models.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Insert validates and persists a draft, then prepends the stored record to
// the collection. The returned workflow carries the server-assigned id and
// timestamps.
func (s *Store) Insert(ctx context.Context, sess *auth.Session, draft models.Workflow) (*models.Workflow, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	if draft.Nodes == nil {
		return nil, fmt.Errorf("%w: nodes must not be nil", ErrInvalidDraft)
	}

	if err := s.validator.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	draft.ID = ""
	draft.UserID = sess.UserID

	if !draft.Status.Valid() {
		draft.Status = models.WorkflowStatusActive
	}

	if err := s.repo.Save(ctx, &draft); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateDemoFallback {
		// The write reached persistence, so the demo rows no longer
		// reflect anything; restart the collection from live records.
		s.workflows = nil
		s.state = StateReady
	}

	s.workflows = append([]*models.Workflow{draft.Clone()}, s.workflows...)
	s.mu.Unlock()

	s.publish(ctx, events.WorkflowCreated{
		BaseEvent:    s.baseEvent(events.WorkflowCreatedEvent, draft.ID, sess.UserID),
		Name:         draft.Name,
		FromTemplate: draft.FromTemplate,
		TemplateID:   draft.TemplateID,
	})

	return &draft, nil
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Nodes       []*models.WorkflowNode
	Status      *models.WorkflowStatus
	Prompt      *string
}

// Update applies a patch to the workflow with the given id, persists the
// result, and replaces the record in place so the collection order is kept.
func (s *Store) Update(ctx context.Context, sess *auth.Session, id string, patch Patch) (*models.Workflow, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	s.mu.Lock()
	index, found := s.indexOf(id, sess.UserID)
	if !found {
		s.mu.Unlock()

		return nil, persistence.NewWorkflowError("update", id, persistence.ErrWorkflowNotFound)
	}

	updated := s.workflows[index].Clone()
	s.mu.Unlock()

	if patch.Name != nil {
		updated.Name = *patch.Name
	}

	if patch.Description != nil {
		updated.Description = *patch.Description
	}

	if patch.Nodes != nil {
		updated.Nodes = patch.Nodes
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidDraft, *patch.Status)
		}

		updated.Status = *patch.Status
	}

	if patch.Prompt != nil {
		updated.Prompt = *patch.Prompt
	}

	if err := s.validator.Struct(*updated); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if index, found := s.indexOf(id, sess.UserID); found {
		s.workflows[index] = updated.Clone()
	}
	s.mu.Unlock()

	s.publish(ctx, events.WorkflowUpdated{
		BaseEvent: s.baseEvent(events.WorkflowUpdatedEvent, updated.ID, sess.UserID),
		Name:      updated.Name,
	})

	return updated, nil
}

// Remove deletes the workflow from persistence and from the collection.
func (s *Store) Remove(ctx context.Context, sess *auth.Session, id string) error {
	if sess == nil {
		return auth.ErrNotAuthenticated
	}

	s.mu.Lock()
	_, found := s.indexOf(id, sess.UserID)
	s.mu.Unlock()

	if !found {
		return persistence.NewWorkflowError("remove", id, persistence.ErrWorkflowNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if index, found := s.indexOf(id, sess.UserID); found {
		s.workflows = append(s.workflows[:index], s.workflows[index+1:]...)
	}
	s.mu.Unlock()

	s.publish(ctx, events.WorkflowDeleted{
		BaseEvent: s.baseEvent(events.WorkflowDeletedEvent, id, sess.UserID),
	})

	return nil
}

// SetStatus changes a workflow's status optimistically: the local record is
// updated and the applied event published before the persistence write. If
// the write fails, the previous status is restored and a rollback event
// published, then the failure is returned.
func (s *Store) SetStatus(ctx context.Context, sess *auth.Session, id string, status models.WorkflowStatus) (*models.Workflow, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidDraft, status)
	}

	s.mu.Lock()
	index, found := s.indexOf(id, sess.UserID)
	if !found {
		s.mu.Unlock()

		return nil, persistence.NewWorkflowError("set status", id, persistence.ErrWorkflowNotFound)
	}

	previous := s.workflows[index].Status
	previousUpdatedAt := s.workflows[index].UpdatedAt
	s.workflows[index].Status = status
	s.workflows[index].UpdatedAt = time.Now().UTC()
	candidate := s.workflows[index].Clone()
	s.mu.Unlock()

	s.publish(ctx, events.WorkflowStatusApplied{
		BaseEvent:      s.baseEvent(events.WorkflowStatusAppliedEvent, id, sess.UserID),
		PreviousStatus: previous,
		NewStatus:      status,
	})

	if err := s.repo.Save(ctx, candidate); err != nil {
		s.mu.Lock()
		if index, found := s.indexOf(id, sess.UserID); found {
			s.workflows[index].Status = previous
			s.workflows[index].UpdatedAt = previousUpdatedAt
		}
		s.mu.Unlock()

		s.publish(ctx, events.WorkflowStatusRolledBack{
			BaseEvent:      s.baseEvent(events.WorkflowStatusRolledBackEvent, id, sess.UserID),
			RestoredStatus: previous,
			FailedStatus:   status,
			Reason:         err.Error(),
		})

		return nil, err
	}

	s.mu.Lock()
	if index, found := s.indexOf(id, sess.UserID); found {
		s.workflows[index] = candidate.Clone()
	}
	s.mu.Unlock()

	return candidate, nil
}

// indexOf finds the record with the given id owned by the user. Callers must
// hold the mutex.
func (s *Store) indexOf(id, userID string) (int, bool) {
	for i := range s.workflows {
		if s.workflows[i].ID == id && s.workflows[i].UserID == userID {
			return i, true
		}
	}

	return 0, false
}

func (s *Store) snapshot() []*models.Workflow {
	result := make([]*models.Workflow, 0, len(s.workflows))
	for _, workflow := range s.workflows {
		result = append(result, workflow.Clone())
	}

	return result
}

func (s *Store) baseEvent(eventType events.EventType, workflowID, userID string) events.BaseEvent {
	return events.BaseEvent{
		ID:         s.bus.GenerateID(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		UserID:     userID,
	}
}

func (s *Store) publish(ctx context.Context, event eventbus.Event) {
	if err := s.bus.Publish(ctx, string(event.GetType()), event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish lifecycle event", "event_type", event.GetType(), "error", err)
	}
}
