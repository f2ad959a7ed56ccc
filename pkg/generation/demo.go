package generation

import "github.com/flowdeck/flowdeck/pkg/models"

// Sample returns the canned draft served when no generation service is
// configured, so the creator flow stays demoable end to end.
func Sample() *Result {
	return &Result{
		Name:        "New Lead Notification",
		Description: "Sends a Slack message when a new lead is added to Google Sheets",
		Nodes: []*models.WorkflowNode{
			{
				ID:          "1",
				Name:        "Google Sheets Trigger",
				Type:        models.NodeTypeTrigger,
				Description: "Monitors for new rows in the specified sheet",
			},
			{
				ID:          "2",
				Name:        "Slack",
				Type:        models.NodeTypeAction,
				Description: "Sends a notification to the specified channel",
			},
		},
	}
}
