package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/models"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Popularity, all[i].Popularity)
	}
}

func TestByID(t *testing.T) {
	template, ok := ByID("template-2")
	require.True(t, ok)
	assert.Equal(t, "Daily Task Summary", template.Name)
	assert.Len(t, template.Nodes, 4)

	_, ok = ByID("template-99")
	assert.False(t, ok)
}

func TestFilterByCategory(t *testing.T) {
	result := Filter("", models.CategorySales)
	require.Len(t, result, 1)
	assert.Equal(t, "Lead Capture Notification", result[0].Name)
}

func TestFilterAllTemplatesCategory(t *testing.T) {
	assert.Len(t, Filter("", models.CategoryAllTemplates), 6)
	assert.Len(t, Filter("", ""), 6)
}

func TestFilterByQueryMatchesTags(t *testing.T) {
	result := Filter("onboarding", "")
	require.Len(t, result, 1)
	assert.Equal(t, "Employee Onboarding", result[0].Name)
}

func TestFilterQueryIsCaseInsensitive(t *testing.T) {
	result := Filter("INVOICE", "")
	require.Len(t, result, 1)
	assert.Equal(t, "Invoice Payment Reminder", result[0].Name)
}

func TestFilterQueryAndCategoryCombine(t *testing.T) {
	assert.Empty(t, Filter("invoice", models.CategoryHR))
	assert.Len(t, Filter("invoice", models.CategoryFinance), 1)
}

func TestInstantiate(t *testing.T) {
	template, ok := ByID("template-2")
	require.True(t, ok)

	workflow := Instantiate(template, "user-1")

	assert.Empty(t, workflow.ID)
	assert.Equal(t, template.Name, workflow.Name)
	assert.Equal(t, template.Description, workflow.Description)
	assert.Equal(t, models.WorkflowStatusActive, workflow.Status)
	assert.Equal(t, "Create a workflow for: "+template.Description, workflow.Prompt)
	assert.True(t, workflow.FromTemplate)
	assert.Equal(t, "template-2", workflow.TemplateID)
	assert.Equal(t, "user-1", workflow.UserID)
	require.Len(t, workflow.Nodes, 4)
}

func TestInstantiateAssignsFreshNodeIDs(t *testing.T) {
	template, ok := ByID("template-1")
	require.True(t, ok)

	first := Instantiate(template, "user-1")
	second := Instantiate(template, "user-1")

	for i := range first.Nodes {
		assert.NotEqual(t, template.Nodes[i].ID, first.Nodes[i].ID)
		assert.NotEqual(t, first.Nodes[i].ID, second.Nodes[i].ID)
		assert.Equal(t, template.Nodes[i].Name, first.Nodes[i].Name)
	}
}

func TestInstantiateRemapsConnections(t *testing.T) {
	template := models.WorkflowTemplate{
		ID:   "template-custom",
		Name: "Chained",
		Nodes: []*models.WorkflowNode{
			{ID: "a", Name: "Start", Type: models.NodeTypeTrigger, Next: []string{"b"}, ErrorNext: "c"},
			{ID: "b", Name: "Middle", Type: models.NodeTypeAction, Next: []string{"c"}},
			{ID: "c", Name: "End", Type: models.NodeTypeAction},
		},
	}

	workflow := Instantiate(template, "user-1")
	require.Len(t, workflow.Nodes, 3)

	require.Len(t, workflow.Nodes[0].Next, 1)
	assert.Equal(t, workflow.Nodes[1].ID, workflow.Nodes[0].Next[0])
	assert.Equal(t, workflow.Nodes[2].ID, workflow.Nodes[0].ErrorNext)
	assert.Equal(t, workflow.Nodes[2].ID, workflow.Nodes[1].Next[0])
}

func TestInstantiateDoesNotShareNodeSlices(t *testing.T) {
	template, ok := ByID("template-3")
	require.True(t, ok)

	workflow := Instantiate(template, "user-1")
	workflow.Nodes[0].Name = "changed"

	fresh, _ := ByID("template-3")
	assert.Equal(t, "Content Published Trigger", fresh.Nodes[0].Name)
}
