// Package templates holds the built-in workflow template catalog and turns
// templates into ready-to-save workflows.
package templates

import (
	"strings"

	"github.com/flowdeck/flowdeck/pkg/models"
)

// catalog is the built-in template set. Templates are ordered by popularity
// and returned in that order.
var catalog = []models.WorkflowTemplate{
	{
		ID:          "template-1",
		Name:        "Lead Capture Notification",
		Description: "Automatically send a notification to your team when a new lead is captured through your website form.",
		Category:    models.CategorySales,
		Popularity:  95,
		Tags:        []string{"sales", "leads", "notification"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "Form Submission Trigger", Type: models.NodeTypeTrigger, Description: "Triggered when a form is submitted on your website"},
			{ID: "2", Name: "Lead Data Processing", Type: models.NodeTypeAction, Description: "Process and validate lead information"},
			{ID: "3", Name: "Team Notification", Type: models.NodeTypeAction, Description: "Send notification to sales team"},
		},
	},
	{
		ID:          "template-2",
		Name:        "Daily Task Summary",
		Description: "Compile and send a daily summary of all tasks completed by your team.",
		Category:    models.CategoryProjectManagement,
		Popularity:  87,
		Tags:        []string{"project", "tasks", "summary"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "Daily Schedule Trigger", Type: models.NodeTypeTrigger, Description: "Runs automatically at the end of each workday"},
			{ID: "2", Name: "Task Data Collection", Type: models.NodeTypeAction, Description: "Gather completed tasks from project management tool"},
			{ID: "3", Name: "Summary Generation", Type: models.NodeTypeAction, Description: "Create a formatted summary report"},
			{ID: "4", Name: "Email Delivery", Type: models.NodeTypeAction, Description: "Send summary email to team leads"},
		},
	},
	{
		ID:          "template-3",
		Name:        "New Content Alert",
		Description: "Monitor your blog or content platform and send alerts when new content is published.",
		Category:    models.CategoryMarketing,
		Popularity:  82,
		Tags:        []string{"marketing", "content", "alert"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "Content Published Trigger", Type: models.NodeTypeTrigger, Description: "Triggered when new content is published"},
			{ID: "2", Name: "Content Metadata Extraction", Type: models.NodeTypeAction, Description: "Extract title, description, and URL of new content"},
			{ID: "3", Name: "Social Media Post", Type: models.NodeTypeAction, Description: "Create and schedule social media posts"},
		},
	},
	{
		ID:          "template-4",
		Name:        "Customer Feedback Analyzer",
		Description: "Collect and analyze customer feedback to generate insights for your team.",
		Category:    models.CategoryCustomerSupport,
		Popularity:  78,
		Tags:        []string{"customer", "feedback", "analysis"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "Feedback Form Submission", Type: models.NodeTypeTrigger, Description: "Triggered when a customer submits feedback"},
			{ID: "2", Name: "Sentiment Analysis", Type: models.NodeTypeAction, Description: "Analyze feedback tone using AI"},
			{ID: "3", Name: "Categorization", Type: models.NodeTypeAction, Description: "Categorize feedback by topic and urgency"},
			{ID: "4", Name: "Team Alert", Type: models.NodeTypeAction, Description: "Alert relevant team members based on feedback content"},
		},
	},
	{
		ID:          "template-5",
		Name:        "Invoice Payment Reminder",
		Description: "Automatically send reminders to clients when invoices are approaching their due date.",
		Category:    models.CategoryFinance,
		Popularity:  75,
		Tags:        []string{"invoice", "payment", "reminder"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "Date Check Trigger", Type: models.NodeTypeTrigger, Description: "Checks daily for upcoming invoice due dates"},
			{ID: "2", Name: "Invoice Status Check", Type: models.NodeTypeAction, Description: "Verify if invoice is still unpaid"},
			{ID: "3", Name: "Reminder Email", Type: models.NodeTypeAction, Description: "Send a friendly payment reminder email"},
		},
	},
	{
		ID:          "template-6",
		Name:        "Employee Onboarding",
		Description: "Streamline your employee onboarding process with automated task assignments and reminders.",
		Category:    models.CategoryHR,
		Popularity:  73,
		Tags:        []string{"hr", "onboarding", "employees"},
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "New Employee Added", Type: models.NodeTypeTrigger, Description: "Triggered when a new employee record is created"},
			{ID: "2", Name: "Create Onboarding Tasks", Type: models.NodeTypeAction, Description: "Generate onboarding tasks for different departments"},
			{ID: "3", Name: "Equipment Request", Type: models.NodeTypeAction, Description: "Submit IT equipment request"},
			{ID: "4", Name: "Welcome Email", Type: models.NodeTypeAction, Description: "Send welcome email with first day information"},
		},
	},
}

// All returns the full catalog in popularity order.
func All() []models.WorkflowTemplate {
	result := make([]models.WorkflowTemplate, len(catalog))
	copy(result, catalog)

	return result
}

// ByID looks up a single template. The second return value reports whether
// the template exists.
func ByID(id string) (models.WorkflowTemplate, bool) {
	for _, template := range catalog {
		if template.ID == id {
			return template, true
		}
	}

	return models.WorkflowTemplate{}, false
}

// Filter narrows the catalog by free-text query and category. The query
// matches name, description and tags, case-insensitively. The all-templates
// category and the empty string both disable category filtering.
func Filter(query string, category models.TemplateCategory) []models.WorkflowTemplate {
	query = strings.ToLower(strings.TrimSpace(query))

	result := make([]models.WorkflowTemplate, 0, len(catalog))

	for _, template := range catalog {
		if category != "" && category != models.CategoryAllTemplates && template.Category != category {
			continue
		}

		if query != "" && !matchesQuery(template, query) {
			continue
		}

		result = append(result, template)
	}

	return result
}

func matchesQuery(template models.WorkflowTemplate, query string) bool {
	if strings.Contains(strings.ToLower(template.Name), query) {
		return true
	}

	if strings.Contains(strings.ToLower(template.Description), query) {
		return true
	}

	for _, tag := range template.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}
