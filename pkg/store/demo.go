package store

import (
	"time"

	"github.com/flowdeck/flowdeck/pkg/models"
)

// demoWorkflows is the fixed dataset shown when the persistence collaborator
// is unreachable so the dashboard stays usable. Returned fresh on each call;
// demo records are never written back.
func demoWorkflows() []*models.Workflow {
	return []*models.Workflow{
		{
			ID:             "1",
			Name:           "Email Newsletter",
			Description:    "Send weekly newsletter to subscribers",
			Status:         models.WorkflowStatusActive,
			CreatedAt:      time.Date(2023, 10, 15, 9, 0, 0, 0, time.UTC),
			ExecutionCount: 28,
			Nodes: []*models.WorkflowNode{
				{ID: "1", Name: "Schedule", Type: models.NodeTypeTrigger},
				{ID: "2", Name: "Fetch Content", Type: models.NodeTypeAction},
				{ID: "3", Name: "Send Email", Type: models.NodeTypeAction},
			},
		},
		{
			ID:             "2",
			Name:           "Social Media Posts",
			Description:    "Automatically post to social media platforms",
			Status:         models.WorkflowStatusPaused,
			CreatedAt:      time.Date(2023, 9, 20, 14, 30, 0, 0, time.UTC),
			ExecutionCount: 12,
			Nodes: []*models.WorkflowNode{
				{ID: "1", Name: "Content Approval", Type: models.NodeTypeTrigger},
				{ID: "2", Name: "Format Content", Type: models.NodeTypeAction},
				{ID: "3", Name: "Post to Socials", Type: models.NodeTypeAction},
			},
		},
		{
			ID:             "3",
			Name:           "Data Backup",
			Description:    "Daily backup of database to cloud storage",
			Status:         models.WorkflowStatusActive,
			CreatedAt:      time.Date(2023, 11, 5, 23, 15, 0, 0, time.UTC),
			ExecutionCount: 42,
			Nodes: []*models.WorkflowNode{
				{ID: "1", Name: "Daily Trigger", Type: models.NodeTypeTrigger},
				{ID: "2", Name: "Export Data", Type: models.NodeTypeAction},
				{ID: "3", Name: "Upload to S3", Type: models.NodeTypeAction},
			},
		},
	}
}
