package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/models"
)

func fixtureWorkflows() []*models.Workflow {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	return []*models.Workflow{
		{
			ID:          "wf-1",
			Name:        "Email Newsletter",
			Description: "Automatically send weekly newsletter to subscribers",
			Status:      models.WorkflowStatusActive,
			CreatedAt:   base.Add(48 * time.Hour),
		},
		{
			ID:          "wf-2",
			Name:        "Social Media Posts",
			Description: "Schedule posts across platforms",
			Status:      models.WorkflowStatusPaused,
			CreatedAt:   base.Add(24 * time.Hour),
		},
		{
			ID:          "wf-3",
			Name:        "Data Backup",
			Description: "Daily backup of lead data to cloud storage",
			Status:      models.WorkflowStatusActive,
			CreatedAt:   base,
		},
	}
}

func TestApplyDefaultsToNewestFirst(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{})
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "wf-1", result[0].ID)
	assert.Equal(t, "wf-2", result[1].ID)
	assert.Equal(t, "wf-3", result[2].ID)
}

func TestApplyStatusFilter(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Status: "active"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	names := []string{result[0].Name, result[1].Name}
	assert.ElementsMatch(t, []string{"Email Newsletter", "Data Backup"}, names)
}

func TestApplyStatusAll(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Status: StatusAll})
	require.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestApplyInvalidStatus(t *testing.T) {
	_, err := Apply(fixtureWorkflows(), Options{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Search: "LEAD"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Data Backup", result[0].Name)
}

func TestApplySearchMatchesNameAndDescription(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Search: "newsletter"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Email Newsletter", result[0].Name)
}

func TestApplySearchThenStatus(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Search: "a", Status: "paused"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Social Media Posts", result[0].Name)
}

func TestApplyAlphabetical(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Sort: SortAlphabetical})
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "Data Backup", result[0].Name)
	assert.Equal(t, "Email Newsletter", result[1].Name)
	assert.Equal(t, "Social Media Posts", result[2].Name)
}

func TestApplyAlphabeticalIsCaseSensitiveLexical(t *testing.T) {
	workflows := fixtureWorkflows()
	workflows[0].Name = "email newsletter"

	result, err := Apply(workflows, Options{Sort: SortAlphabetical})
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "Data Backup", result[0].Name)
	assert.Equal(t, "Social Media Posts", result[1].Name)
	assert.Equal(t, "email newsletter", result[2].Name)
}

func TestApplyOldestFirst(t *testing.T) {
	result, err := Apply(fixtureWorkflows(), Options{Sort: SortOldest})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "wf-3", result[0].ID)
	assert.Equal(t, "wf-1", result[2].ID)
}

func TestApplyInvalidSort(t *testing.T) {
	_, err := Apply(fixtureWorkflows(), Options{Sort: "popularity"})
	require.ErrorIs(t, err, ErrInvalidSort)
}

func TestApplySortIsStable(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	workflows := []*models.Workflow{
		{ID: "wf-a", Name: "Same Moment", CreatedAt: created, Status: models.WorkflowStatusActive},
		{ID: "wf-b", Name: "Same Moment", CreatedAt: created, Status: models.WorkflowStatusActive},
		{ID: "wf-c", Name: "Same Moment", CreatedAt: created, Status: models.WorkflowStatusActive},
	}

	for _, order := range []SortOrder{SortNewest, SortOldest, SortAlphabetical} {
		result, err := Apply(workflows, Options{Sort: order})
		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, "wf-a", result[0].ID, "order %s", order)
		assert.Equal(t, "wf-b", result[1].ID, "order %s", order)
		assert.Equal(t, "wf-c", result[2].ID, "order %s", order)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	workflows := fixtureWorkflows()

	_, err := Apply(workflows, Options{Sort: SortAlphabetical})
	require.NoError(t, err)

	assert.Equal(t, "wf-1", workflows[0].ID)
	assert.Equal(t, "wf-2", workflows[1].ID)
	assert.Equal(t, "wf-3", workflows[2].ID)
}
