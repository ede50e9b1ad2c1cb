package blocks

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/linkmax/lnkmx/internal/i18n"
)

// NewBlock builds a block of type t with a generated id, the registry
// defaults for t and fields layered on top.
func NewBlock(t Type, fields map[string]any) (Block, error) {
	def, ok := Lookup(t)
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	defaults, _ := normalizeValue(cloneMap(def.Defaults)).(map[string]any)
	block := Block{
		ID:     GenerateID(t),
		Type:   t,
		Fields: defaults,
	}
	if block.Fields == nil {
		block.Fields = map[string]any{}
	}
	for key, value := range fields {
		if err := block.Set(key, value); err != nil {
			return Block{}, err
		}
	}
	return block, nil
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := Block{
		ID:     b.ID,
		Type:   b.Type,
		Style:  cloneMap(b.Style),
		Fields: cloneMap(b.Fields),
	}
	if b.Schedule != nil {
		out.Schedule = b.Schedule.clone()
	}
	return out
}

// Set stores a payload field. Reserved keys are rejected.
func (b *Block) Set(key string, value any) error {
	key = strings.TrimSpace(key)
	switch key {
	case "", KeyID, KeyType, KeySchedule, KeyStyle:
		return fmt.Errorf("%w: %q", ErrReservedField, key)
	}
	if b.Fields == nil {
		b.Fields = map[string]any{}
	}
	b.Fields[key] = normalizeValue(cloneValue(value))
	return nil
}

// Unset removes a payload field.
func (b *Block) Unset(key string) {
	delete(b.Fields, key)
}

// SetStyle replaces the visual configuration.
func (b *Block) SetStyle(style map[string]any) {
	b.Style = normalizeStyle(cloneMap(style))
}

// Reschedule replaces the visibility window. A nil schedule clears it.
func (b *Block) Reschedule(schedule *Schedule) error {
	if schedule == nil {
		b.Schedule = nil
		return nil
	}
	normalized := NewSchedule(schedule.StartDate, schedule.EndDate)
	if normalized.StartDate != nil && normalized.EndDate != nil && normalized.EndDate.Before(*normalized.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidSchedule)
	}
	b.Schedule = normalized
	return nil
}

// Value returns the raw payload value for key.
func (b Block) Value(key string) (any, bool) {
	value, ok := b.Fields[key]
	return value, ok
}

// String returns a plain string payload field, or "".
func (b Block) String(key string) string {
	value, _ := b.Fields[key].(string)
	return value
}

// Text returns a payload field as multilingual text. Plain strings are
// migrated into every slot.
func (b Block) Text(key string) (i18n.Text, bool) {
	switch value := b.Fields[key].(type) {
	case string:
		return i18n.MigrateToMultilingual(value), true
	default:
		return i18n.FromValue(value)
	}
}

// List returns a list payload field as a slice of items.
func (b Block) List(key string) []any {
	items, _ := asList(b.Fields[key])
	return items
}

// ToMap flattens b into the wire shape: shared fields and payload fields at
// the same level.
func (b Block) ToMap() map[string]any {
	out := make(map[string]any, len(b.Fields)+4)
	for key, value := range b.Fields {
		out[key] = cloneValue(value)
	}
	out[KeyID] = b.ID
	out[KeyType] = string(b.Type)
	if b.Schedule != nil {
		out[KeySchedule] = b.Schedule.toMap()
	}
	if b.Style != nil {
		out[KeyStyle] = cloneMap(b.Style)
	}
	return out
}

// MarshalJSON encodes b in its flattened wire shape.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToMap())
}

// UnmarshalJSON decodes the flattened wire shape.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// FromMap parses a wire-shaped block. The type is not checked against the
// registry so unknown blocks survive for validation to report.
func FromMap(raw map[string]any) (Block, error) {
	if raw == nil {
		return Block{}, ErrBlockRequired
	}
	block := Block{Fields: map[string]any{}}
	for key, value := range raw {
		switch key {
		case KeyID:
			block.ID, _ = value.(string)
		case KeyType:
			switch typed := value.(type) {
			case string:
				block.Type = Type(typed)
			case Type:
				block.Type = typed
			}
		case KeySchedule:
			schedule, err := ParseSchedule(value)
			if err != nil {
				return Block{}, err
			}
			block.Schedule = schedule
		case KeyStyle:
			if style, ok := value.(map[string]any); ok {
				block.Style = normalizeStyle(cloneMap(style))
			}
		default:
			block.Fields[key] = normalizeValue(cloneValue(value))
		}
	}
	if len(block.Fields) == 0 {
		block.Fields = nil
	}
	return block, nil
}

// NewSchedule builds a schedule normalised to UTC.
func NewSchedule(start, end *time.Time) *Schedule {
	return &Schedule{StartDate: utcPtr(start), EndDate: utcPtr(end)}
}

// ParseSchedule accepts a *Schedule, Schedule or a decoded JSON object with
// RFC 3339 startDate/endDate strings. nil yields nil.
func ParseSchedule(value any) (*Schedule, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case *Schedule:
		if typed == nil {
			return nil, nil
		}
		return typed.clone(), nil
	case Schedule:
		return typed.clone(), nil
	case map[string]any:
		start, err := parseScheduleTime(typed["startDate"])
		if err != nil {
			return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidSchedule, err)
		}
		end, err := parseScheduleTime(typed["endDate"])
		if err != nil {
			return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidSchedule, err)
		}
		return NewSchedule(start, end), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value %T", ErrInvalidSchedule, value)
	}
}

func parseScheduleTime(value any) (*time.Time, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil, nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, typed)
		if err != nil {
			return nil, err
		}
		return &parsed, nil
	case time.Time:
		return &typed, nil
	case *time.Time:
		return typed, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", value)
	}
}

func (s *Schedule) clone() *Schedule {
	return NewSchedule(s.StartDate, s.EndDate)
}

func (s *Schedule) toMap() map[string]any {
	out := map[string]any{}
	if s.StartDate != nil {
		out["startDate"] = s.StartDate.UTC().Format(time.RFC3339Nano)
	}
	if s.EndDate != nil {
		out["endDate"] = s.EndDate.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// normalizeValue puts a payload value in the shape a JSON round-trip yields:
// language objects become i18n.Text, numbers become float64 and typed slices
// become []any. Blocks then compare equal after storage.
func normalizeValue(value any) any {
	return normalize(value, true)
}

// normalizeStyle is normalizeValue for style maps, which never hold text.
func normalizeStyle(style map[string]any) map[string]any {
	if style == nil {
		return nil
	}
	normalized, _ := normalize(style, false).(map[string]any)
	return normalized
}

func normalize(value any, text bool) any {
	switch typed := value.(type) {
	case nil, string, bool, float64, []byte, i18n.Text:
		return value
	case map[string]any:
		if text && i18n.LooksLikeText(typed) {
			converted, _ := i18n.FromValue(typed)
			return converted
		}
		for key, item := range typed {
			typed[key] = normalize(item, text)
		}
		return typed
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item, text)
		}
		return typed
	case *i18n.Text:
		if typed == nil {
			return nil
		}
		return *typed
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface(), text)
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return value
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return normalize(out, text)
	}
	return value
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		if typed == nil {
			return typed
		}
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		if typed == nil {
			return typed
		}
		return append([]string(nil), typed...)
	case *i18n.Text:
		if typed == nil {
			return typed
		}
		copied := *typed
		return &copied
	case *Schedule:
		if typed == nil {
			return typed
		}
		return typed.clone()
	default:
		return value
	}
}

// CloneValue deep-copies decoded payload values: maps, slices and text.
func CloneValue(value any) any {
	return cloneValue(value)
}

func asList(value any) ([]any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
