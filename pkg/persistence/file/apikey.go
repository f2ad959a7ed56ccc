package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

// APIKeyRepository handles API key file operations.
type APIKeyRepository struct {
	root string
}

// NewAPIKeyRepository creates a new API key repository.
func NewAPIKeyRepository(root string) *APIKeyRepository {
	return &APIKeyRepository{root: root}
}

// ListByUser returns all API keys owned by the given user, oldest first.
func (kr *APIKeyRepository) ListByUser(ctx context.Context, userID string) ([]*models.APIKey, error) {
	root := os.DirFS(path.Join(kr.root, "api_keys"))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list api key files: %w", err)
	}

	keys := make([]*models.APIKey, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		key, err := kr.GetByID(ctx, file[:len(file)-5])
		if err != nil {
			if persistence.IsAPIKeyNotFound(err) {
				continue
			}

			return nil, err
		}

		if key.UserID == userID {
			keys = append(keys, key)
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].CreatedAt.Before(keys[j].CreatedAt)
	})

	return keys, nil
}

// GetByID retrieves an API key by its ID.
func (kr *APIKeyRepository) GetByID(_ context.Context, id string) (*models.APIKey, error) {
	filePath := filepath.Clean(path.Join(kr.root, "api_keys", id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("get api key %s: %w", id, persistence.ErrAPIKeyNotFound)
		}

		return nil, fmt.Errorf("failed to fetch api key %s: %w", id, err)
	}

	var key models.APIKey

	err = json.Unmarshal(body, &key)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal api key %s: %w", id, err)
	}

	return &key, nil
}

// Save saves an API key, assigning identity and creation time when absent.
func (kr *APIKeyRepository) Save(_ context.Context, key *models.APIKey) error {
	err := os.MkdirAll(path.Join(kr.root, "api_keys"), 0750)
	if err != nil {
		return fmt.Errorf("failed to create api_keys directory: %w", err)
	}

	if key.ID == "" {
		key.ID = uuid.New().String()
	}

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(key, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal api key %s: %w", key.ID, err)
	}

	return os.WriteFile(path.Join(kr.root, "api_keys", key.ID+".json"), data, 0600)
}

// Delete removes an API key by its ID.
func (kr *APIKeyRepository) Delete(_ context.Context, id string) error {
	err := os.Remove(path.Join(kr.root, "api_keys", id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("delete api key %s: %w", id, persistence.ErrAPIKeyNotFound)
		}

		return fmt.Errorf("failed to delete api key %s: %w", id, err)
	}

	return nil
}
