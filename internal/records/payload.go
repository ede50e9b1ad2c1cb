package records

import (
	"fmt"
	"strings"

	"github.com/linkmax/lnkmx/internal/blocks"
)

// TitleExtractor returns a human-readable label for a block, or nil.
type TitleExtractor func(blocks.Block) *string

// BuildPayload converts list into persistence records. Position is the list
// index. The first malformed block aborts the whole call with a
// *StructuralError; callers are expected to have run blocks.Validate first.
func BuildPayload(list []blocks.Block, extract TitleExtractor) ([]Record, error) {
	snapshot := make([]blocks.Block, len(list))
	copy(snapshot, list)

	out := make([]Record, 0, len(snapshot))
	for position, block := range snapshot {
		if err := checkStructure(position, block); err != nil {
			return nil, err
		}
		out = append(out, buildRecord(position, block, extract))
	}
	return out, nil
}

// BuildPayloadRaw is BuildPayload for decoded JSON input, where an entry may
// not even be an object.
func BuildPayloadRaw(list []any, extract TitleExtractor) ([]Record, error) {
	parsed := make([]blocks.Block, 0, len(list))
	for position, item := range list {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, &StructuralError{Position: position, Reason: fmt.Sprintf("expected an object, got %T", item)}
		}
		if id, present := raw[blocks.KeyID]; present {
			if _, isString := id.(string); !isString {
				return nil, &StructuralError{Position: position, Reason: "id must be a string"}
			}
		}
		block, err := blocks.FromMap(raw)
		if err != nil {
			return nil, &StructuralError{Position: position, Reason: err.Error()}
		}
		parsed = append(parsed, block)
	}
	return BuildPayload(parsed, extract)
}

func checkStructure(position int, block blocks.Block) error {
	if strings.TrimSpace(block.ID) == "" {
		return &StructuralError{Position: position, Reason: "missing id"}
	}
	if !blocks.IsKnown(block.Type) {
		return &StructuralError{Position: position, Reason: fmt.Sprintf("unknown type %q", block.Type)}
	}
	return nil
}

func buildRecord(position int, block blocks.Block, extract TitleExtractor) Record {
	record := Record{
		Type:     string(block.Type),
		Position: position,
		Content:  block.Clone().ToMap(),
		Style:    map[string]any{},
	}
	if extract != nil {
		record.Title = extract(block)
	}
	if block.Schedule != nil {
		if schedule, ok := block.ToMap()[blocks.KeySchedule].(map[string]any); ok {
			record.Schedule = schedule
		}
	}
	return record
}
