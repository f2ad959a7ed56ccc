package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeType_Valid(t *testing.T) {
	for _, nodeType := range NodeTypes {
		assert.True(t, nodeType.Valid(), "expected %q to be valid", nodeType)
	}

	assert.False(t, NodeType("webhook").Valid())
	assert.False(t, NodeType("").Valid())
}

func TestWorkflowStatus_Valid(t *testing.T) {
	for _, status := range WorkflowStatuses {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}

	assert.False(t, WorkflowStatus("published").Valid())
	assert.False(t, WorkflowStatus("").Valid())
}

func TestWorkflow_Persisted(t *testing.T) {
	transient := &Workflow{Name: "Draft"}
	assert.False(t, transient.Persisted())

	persisted := &Workflow{ID: "wf-1", Name: "Saved"}
	assert.True(t, persisted.Persisted())
}

func TestWorkflow_Clone_IsDeep(t *testing.T) {
	original := &Workflow{
		ID:   "wf-1",
		Name: "Email Newsletter",
		Nodes: []*WorkflowNode{
			{
				ID:     "n-1",
				Name:   "Schedule",
				Type:   NodeTypeTrigger,
				Config: map[string]any{"cron": "0 9 * * 1"},
				Next:   []string{"n-2"},
			},
			{ID: "n-2", Name: "Send Email", Type: NodeTypeAction},
		},
	}

	clone := original.Clone()

	clone.Name = "Changed"
	clone.Nodes[0].Name = "Changed Node"
	clone.Nodes[0].Config["cron"] = "changed"
	clone.Nodes[0].Next[0] = "changed"

	assert.Equal(t, "Email Newsletter", original.Name)
	assert.Equal(t, "Schedule", original.Nodes[0].Name)
	assert.Equal(t, "0 9 * * 1", original.Nodes[0].Config["cron"])
	assert.Equal(t, []string{"n-2"}, original.Nodes[0].Next)
}

func TestWorkflow_Clone_Nil(t *testing.T) {
	var workflow *Workflow
	assert.Nil(t, workflow.Clone())
}
