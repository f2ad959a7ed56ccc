package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
)

func TestAPIKeyRepository_SaveAndListByUser(t *testing.T) {
	repo := NewAPIKeyRepository(t.TempDir())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	keys := []*models.APIKey{
		{ID: "key-1", UserID: "user-1", Name: "Slack", Service: "slack", Key: "xoxb-1", CreatedAt: base},
		{ID: "key-2", UserID: "user-1", Name: "Sheets", Service: "google", Key: "ya29-2", CreatedAt: base.Add(time.Hour)},
		{ID: "key-3", UserID: "user-2", Name: "Other", Service: "slack", Key: "xoxb-3", CreatedAt: base},
	}
	for _, key := range keys {
		require.NoError(t, repo.Save(t.Context(), key))
	}

	owned, err := repo.ListByUser(t.Context(), "user-1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "key-1", owned[0].ID, "oldest first")
	assert.Equal(t, "key-2", owned[1].ID)
}

func TestAPIKeyRepository_Save_AssignsIdentity(t *testing.T) {
	repo := NewAPIKeyRepository(t.TempDir())

	key := &models.APIKey{UserID: "user-1", Name: "OpenAI", Service: "openai", Key: "sk-test"}
	require.NoError(t, repo.Save(t.Context(), key))

	assert.NotEmpty(t, key.ID)
	assert.False(t, key.CreatedAt.IsZero())
}

func TestAPIKeyRepository_Delete_NotFound(t *testing.T) {
	repo := NewAPIKeyRepository(t.TempDir())

	err := repo.Delete(t.Context(), "missing")
	assert.True(t, persistence.IsAPIKeyNotFound(err))
}
