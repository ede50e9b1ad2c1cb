package validation

import (
	"errors"
	"testing"
)

var pointSchema = map[string]any{
	"type":     "object",
	"required": []any{"x"},
	"properties": map[string]any{
		"x": map[string]any{"type": "integer", "minimum": 0},
	},
}

func TestValidatorAcceptsTypedPayload(t *testing.T) {
	type point struct {
		X int `json:"x"`
	}
	if err := NewValidator(pointSchema).Validate(point{X: 3}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidatorReportsIssues(t *testing.T) {
	err := NewValidator(pointSchema).Validate(map[string]any{"x": -1})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) == 0 || issues[0].Location != "/x" {
		t.Fatalf("expected issue at /x, got %+v", issues)
	}
}

func TestValidatorReportsBrokenSchema(t *testing.T) {
	broken := map[string]any{"type": 12}
	if err := NewValidator(broken).Validate(map[string]any{}); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
	if err := ValidateSchema(broken); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid from ValidateSchema, got %v", err)
	}
}
