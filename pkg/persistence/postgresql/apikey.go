package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

// APIKeyRepository handles API key database operations.
type APIKeyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAPIKeyRepository creates a new API key repository.
func NewAPIKeyRepository(db *sql.DB, logger *slog.Logger) *APIKeyRepository {
	return &APIKeyRepository{db: db, logger: logger}
}

// ListByUser returns all API keys owned by the given user, oldest first.
func (r *APIKeyRepository) ListByUser(ctx context.Context, userID string) ([]*models.APIKey, error) {
	query := `
		SELECT id, user_id, name, service, key, created_at
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api keys: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	keys := make([]*models.APIKey, 0)

	for rows.Next() {
		var key models.APIKey

		err := rows.Scan(&key.ID, &key.UserID, &key.Name, &key.Service, &key.Key, &key.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api key: %w", err)
		}

		keys = append(keys, &key)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating api keys: %w", err)
	}

	return keys, nil
}

// GetByID returns an API key by its ID.
func (r *APIKeyRepository) GetByID(ctx context.Context, id string) (*models.APIKey, error) {
	query := `
		SELECT id, user_id, name, service, key, created_at
		FROM api_keys
		WHERE id = $1
	`

	var key models.APIKey

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&key.ID, &key.UserID, &key.Name, &key.Service, &key.Key, &key.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get api key %s: %w", id, persistence.ErrAPIKeyNotFound)
		}

		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}

	return &key, nil
}

// Save inserts an API key, assigning identity and creation time when absent.
func (r *APIKeyRepository) Save(ctx context.Context, key *models.APIKey) error {
	if key.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate api key ID: %w", err)
		}

		key.ID = id.String()
	}

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO api_keys (id, user_id, name, service, key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, key.ID, key.UserID, key.Name, key.Service, key.Key, key.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save api key: %w", err)
	}

	return nil
}

// Delete removes an API key by its ID.
func (r *APIKeyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM api_keys WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("delete api key %s: %w", id, persistence.ErrAPIKeyNotFound)
	}

	return nil
}
