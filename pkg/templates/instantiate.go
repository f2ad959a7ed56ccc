package templates

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck/pkg/models"
)

// Instantiate builds a workflow from a template for the given user. Node IDs
// are regenerated so two workflows created from the same template never share
// node identity; connections between nodes are remapped to the new IDs. The
// workflow has no ID yet, saving it is the caller's job.
func Instantiate(template models.WorkflowTemplate, userID string) models.Workflow {
	idMap := make(map[string]string, len(template.Nodes))
	for _, node := range template.Nodes {
		idMap[node.ID] = uuid.New().String()
	}

	nodes := make([]*models.WorkflowNode, 0, len(template.Nodes))

	for _, node := range template.Nodes {
		copied := *node
		copied.ID = idMap[node.ID]

		if node.Config != nil {
			copied.Config = make(map[string]any, len(node.Config))
			for k, v := range node.Config {
				copied.Config[k] = v
			}
		}

		if len(node.Next) > 0 {
			copied.Next = make([]string, 0, len(node.Next))

			for _, next := range node.Next {
				if mapped, ok := idMap[next]; ok {
					copied.Next = append(copied.Next, mapped)
				}
			}
		}

		if node.ErrorNext != "" {
			copied.ErrorNext = idMap[node.ErrorNext]
		}

		nodes = append(nodes, &copied)
	}

	return models.Workflow{
		Name:         template.Name,
		Description:  template.Description,
		Nodes:        nodes,
		Status:       models.WorkflowStatusActive,
		Prompt:       fmt.Sprintf("Create a workflow for: %s", template.Description),
		FromTemplate: true,
		TemplateID:   template.ID,
		UserID:       userID,
	}
}
