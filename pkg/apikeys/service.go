// Package apikeys manages per-user credentials for external services wired
// into workflows (Slack tokens, sheet API keys and the like).
package apikeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

// ErrInvalidKey is returned when a submitted key fails validation.
var ErrInvalidKey = errors.New("invalid api key")

type Service struct {
	repo      persistence.APIKeyRepository
	logger    *slog.Logger
	validator *validator.Validate
}

func NewService(repo persistence.APIKeyRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    logger.With("module", "apikeys"),
		validator: validator.New(),
	}
}

// List returns the session user's keys, oldest first.
func (s *Service) List(ctx context.Context, sess *auth.Session) ([]*models.APIKey, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	return s.repo.ListByUser(ctx, sess.UserID)
}

// Create stores a new key owned by the session user. The id and creation
// timestamp are assigned by the repository.
func (s *Service) Create(ctx context.Context, sess *auth.Session, key models.APIKey) (*models.APIKey, error) {
	if sess == nil {
		return nil, auth.ErrNotAuthenticated
	}

	key.ID = ""
	key.UserID = sess.UserID

	if err := s.validator.Struct(key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if err := s.repo.Save(ctx, &key); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "API key created", "api_key_id", key.ID, "service", key.Service, "user_id", sess.UserID)

	return &key, nil
}

// Delete removes a key after verifying the session user owns it. A key owned
// by someone else is indistinguishable from a missing one.
func (s *Service) Delete(ctx context.Context, sess *auth.Session, id string) error {
	if sess == nil {
		return auth.ErrNotAuthenticated
	}

	key, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if key.UserID != sess.UserID {
		return persistence.ErrAPIKeyNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "API key deleted", "api_key_id", id, "user_id", sess.UserID)

	return nil
}
