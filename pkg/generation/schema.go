package generation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema is the shape the generation service must return: a workflow
// envelope whose name and description are optional (missing values get
// placeholder defaults) and whose nodes, when present, must be structurally
// complete. A response without the envelope is rejected.
var responseSchema = map[string]any{
	"type":     "object",
	"required": []any{"workflow"},
	"properties": map[string]any{
		"workflow": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"nodes": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"id", "name", "type"},
						"properties": map[string]any{
							"id":          map[string]any{"type": "string", "minLength": 1},
							"name":        map[string]any{"type": "string", "minLength": 1},
							"type":        map[string]any{"type": "string", "enum": []any{"trigger", "action", "condition", "filter", "transformer"}},
							"description": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

func validateResponse(data map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(responseSchema)
	dataLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}

		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}
