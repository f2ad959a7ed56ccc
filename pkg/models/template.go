package models

// TemplateCategory is one of the fixed template gallery categories.
type TemplateCategory string

const (
	CategoryAllTemplates      TemplateCategory = "All Templates"
	CategoryCommunication     TemplateCategory = "Communication"
	CategoryMarketing         TemplateCategory = "Marketing"
	CategorySales             TemplateCategory = "Sales"
	CategoryCustomerSupport   TemplateCategory = "Customer Support"
	CategoryHR                TemplateCategory = "HR"
	CategoryFinance           TemplateCategory = "Finance"
	CategoryProjectManagement TemplateCategory = "Project Management"
)

// TemplateCategories lists the gallery categories in display order.
// CategoryAllTemplates is the "no filter" selector, not a real category.
var TemplateCategories = []TemplateCategory{
	CategoryAllTemplates,
	CategoryCommunication,
	CategoryMarketing,
	CategorySales,
	CategoryCustomerSupport,
	CategoryHR,
	CategoryFinance,
	CategoryProjectManagement,
}

// WorkflowTemplate is an immutable, statically defined workflow
// blueprint. Instantiating one clones its name, description and nodes
// into a new Workflow; template node ids are scoped to the template and
// never leak into instantiated records.
type WorkflowTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Popularity  int              `json:"popularity"` // 0-100
	Tags        []string         `json:"tags"`
	Nodes       []*WorkflowNode  `json:"nodes"`
}
