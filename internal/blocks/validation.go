package blocks

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/linkmax/lnkmx/internal/i18n"
)

const (
	msgIDRequired   = "Block ID is required"
	msgTypeRequired = "Block type is required"
)

// Validate runs the shared checks and then the registry rules for the
// block's variant. Every problem is reported; nothing short-circuits except
// that variant rules are skipped for an unknown type.
func Validate(b Block) ValidationResult {
	var errs []string
	if strings.TrimSpace(b.ID) == "" {
		errs = append(errs, msgIDRequired)
	}

	switch {
	case strings.TrimSpace(string(b.Type)) == "":
		errs = append(errs, msgTypeRequired)
	case !IsKnown(b.Type):
		errs = append(errs, fmt.Sprintf("Unknown block type: %s", b.Type))
	default:
		def, _ := Lookup(b.Type)
		errs = append(errs, checkRules(string(b.Type), "", def.Rules, b.Fields)...)
	}

	return newValidationResult(errs)
}

// Validate is shorthand for Validate(b).
func (b Block) Validate() ValidationResult {
	return Validate(b)
}

func checkRules(label, prefix string, rules []FieldRule, fields map[string]any) []string {
	var errs []string
	for _, rule := range rules {
		path := prefix + rule.Path
		value, present := fields[rule.Path]
		switch rule.Kind {
		case KindString:
			if text, ok := value.(string); !ok || strings.TrimSpace(text) == "" {
				errs = append(errs, required(label, path))
			}
		case KindMultilingual:
			if _, isString := value.(string); isString && strings.TrimSpace(value.(string)) != "" {
				errs = append(errs, fmt.Sprintf("%s: %s must be multilingual text", label, path))
				continue
			}
			if text, ok := i18n.FromValue(value); !ok || text.IsEmpty() {
				errs = append(errs, required(label, path))
			}
		case KindLocalized:
			if !hasLocalizedContent(value) {
				errs = append(errs, required(label, path))
			}
		case KindNumber:
			if !present || value == nil {
				errs = append(errs, required(label, path))
				continue
			}
			if n, ok := toNumber(value); !ok || n < 0 {
				errs = append(errs, fmt.Sprintf("%s: %s must be a number >= 0", label, path))
			}
		case KindList, KindEach:
			items, ok := asList(value)
			if rule.Kind == KindList && (!ok || len(items) == 0) {
				errs = append(errs, fmt.Sprintf("%s: %s must contain at least one item", label, path))
				continue
			}
			if present && value != nil && !ok {
				errs = append(errs, fmt.Sprintf("%s: %s must be a list", label, path))
				continue
			}
			for i, item := range items {
				itemPrefix := fmt.Sprintf("%s[%d].", path, i)
				entry, isMap := item.(map[string]any)
				if !isMap {
					errs = append(errs, fmt.Sprintf("%s: %s[%d] must be an object", label, path, i))
					continue
				}
				errs = append(errs, checkRules(label, itemPrefix, rule.Items, entry)...)
			}
		}
	}
	return errs
}

func required(label, path string) string {
	return fmt.Sprintf("%s: %s is required", label, path)
}

func hasLocalizedContent(value any) bool {
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) != ""
	}
	text, ok := i18n.FromValue(value)
	return ok && !text.IsEmpty()
}

// toNumber accepts every Go numeric kind and json.Number. NaN and infinities
// are rejected since they cannot be stored as JSON.
func toNumber(value any) (float64, bool) {
	var f float64
	if n, ok := value.(json.Number); ok {
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	} else {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
