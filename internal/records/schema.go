package records

import (
	"github.com/linkmax/lnkmx/internal/validation"
)

var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"type", "position", "title", "content", "style", "schedule"},
	"properties": map[string]any{
		"type":     map[string]any{"type": "string", "minLength": 1},
		"position": map[string]any{"type": "integer", "minimum": 0},
		"title":    map[string]any{"type": []any{"string", "null"}},
		"content": map[string]any{
			"type":     "object",
			"required": []any{"id", "type"},
			"properties": map[string]any{
				"id":   map[string]any{"type": "string", "minLength": 1},
				"type": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"style": map[string]any{"type": "object"},
		"schedule": map[string]any{
			"type": []any{"object", "null"},
			"properties": map[string]any{
				"startDate": map[string]any{"type": "string"},
				"endDate":   map[string]any{"type": "string"},
			},
		},
	},
}

var recordValidator = validation.NewValidator(recordSchema)

// CheckShape verifies a stored record against the persistence record schema.
func CheckShape(record Record) error {
	if err := recordValidator.Validate(record); err != nil {
		return &RecordError{Position: record.Position, Cause: err}
	}
	return nil
}
