package models

// NodeType classifies the semantic role of a workflow step. The set is
// closed; anything outside it is rejected at the API boundary.
type NodeType string

const (
	NodeTypeTrigger     NodeType = "trigger"
	NodeTypeAction      NodeType = "action"
	NodeTypeCondition   NodeType = "condition"
	NodeTypeFilter      NodeType = "filter"
	NodeTypeTransformer NodeType = "transformer"
)

// NodeTypes lists every valid node type, in declaration order.
var NodeTypes = []NodeType{
	NodeTypeTrigger,
	NodeTypeAction,
	NodeTypeCondition,
	NodeTypeFilter,
	NodeTypeTransformer,
}

// Valid reports whether t is a member of the closed node type set.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeTrigger, NodeTypeAction, NodeTypeCondition, NodeTypeFilter, NodeTypeTransformer:
		return true
	default:
		return false
	}
}

// WorkflowNode is one step of a workflow. Slice order within
// Workflow.Nodes is the rendering order; Next and ErrorNext are advisory
// routing metadata only, nothing in this system executes them.
type WorkflowNode struct {
	ID          string         `json:"id"                   validate:"required"`
	Name        string         `json:"name"                 validate:"required,min=1"`
	Type        NodeType       `json:"type"                 validate:"required"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config,omitempty"`
	Next        []string       `json:"next,omitempty"`
	ErrorNext   string         `json:"error_next,omitempty"`
}

func (n *WorkflowNode) IsTriggerNode() bool {
	return n.Type == NodeTypeTrigger
}
