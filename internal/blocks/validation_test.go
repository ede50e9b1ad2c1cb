package blocks

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/linkmax/lnkmx/internal/i18n"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		block Block
		want  []string
	}{
		{
			name:  "valid link",
			block: Block{ID: "link-1", Type: TypeLink, Fields: map[string]any{"url": "https://x.dev", "title": "X"}},
		},
		{
			name:  "link without url",
			block: Block{ID: "link-1", Type: TypeLink, Fields: map[string]any{"url": "", "title": i18n.Text{EN: "X"}}},
			want:  []string{"link: url is required"},
		},
		{
			name:  "missing id and field accumulate",
			block: Block{Type: TypeLink, Fields: map[string]any{"title": "X"}},
			want:  []string{"Block ID is required", "link: url is required"},
		},
		{
			name:  "missing type",
			block: Block{ID: "a"},
			want:  []string{"Block type is required"},
		},
		{
			name:  "unknown type",
			block: Block{ID: "a", Type: "unknown_widget"},
			want:  []string{"Unknown block type: unknown_widget"},
		},
		{
			name:  "separator has no rules",
			block: Block{ID: "sep", Type: TypeSeparator},
		},
		{
			name:  "event requires multilingual title",
			block: Block{ID: "e", Type: TypeEvent, Fields: map[string]any{"title": i18n.Text{}}},
			want:  []string{"event: title is required"},
		},
		{
			name:  "event rejects plain title",
			block: Block{ID: "e", Type: TypeEvent, Fields: map[string]any{"title": "Meetup"}},
			want:  []string{"event: title must be multilingual text"},
		},
		{
			name: "event form field labels",
			block: Block{ID: "e", Type: TypeEvent, Fields: map[string]any{
				"title": i18n.Text{RU: "Встреча"},
				"formFields": []any{
					map[string]any{"label": i18n.Text{EN: "Name"}},
					map[string]any{"label": map[string]any{"ru": "", "en": ""}},
				},
			}},
			want: []string{"event: formFields[1].label is required"},
		},
		{
			name:  "event without form fields",
			block: Block{ID: "e", Type: TypeEvent, Fields: map[string]any{"title": map[string]any{"kk": "Кездесу"}}},
		},
		{
			name:  "pricing empty list",
			block: Block{ID: "p", Type: TypePricing, Fields: map[string]any{"items": []any{}}},
			want:  []string{"pricing: items must contain at least one item"},
		},
		{
			name: "pricing item checks",
			block: Block{ID: "p", Type: TypePricing, Fields: map[string]any{"items": []map[string]any{
				{"name": "Basic", "price": 0},
				{"name": "", "price": -5.0},
				{"name": "Pro"},
				{"name": "Max", "price": "10"},
			}}},
			want: []string{
				"pricing: items[1].name is required",
				"pricing: items[1].price must be a number >= 0",
				"pricing: items[2].price is required",
				"pricing: items[3].price must be a number >= 0",
			},
		},
		{
			name: "pricing numeric kinds",
			block: Block{ID: "p", Type: TypePricing, Fields: map[string]any{"items": []any{
				map[string]any{"name": "A", "price": int8(1)},
				map[string]any{"name": "B", "price": int16(5)},
				map[string]any{"name": "C", "price": uint8(7)},
				map[string]any{"name": "D", "price": uint16(9)},
				map[string]any{"name": "E", "price": uint32(11)},
				map[string]any{"name": "F", "price": uint64(13)},
				map[string]any{"name": "G", "price": float32(2.5)},
				map[string]any{"name": "H", "price": json.Number("4.5")},
			}}},
		},
		{
			name: "pricing rejects nan and infinity",
			block: Block{ID: "p", Type: TypePricing, Fields: map[string]any{"items": []any{
				map[string]any{"name": "A", "price": math.NaN()},
				map[string]any{"name": "B", "price": math.Inf(1)},
				map[string]any{"name": "C", "price": float32(math.Inf(-1))},
			}}},
			want: []string{
				"pricing: items[0].price must be a number >= 0",
				"pricing: items[1].price must be a number >= 0",
				"pricing: items[2].price must be a number >= 0",
			},
		},
		{
			name:  "list of non-objects",
			block: Block{ID: "s", Type: TypeSocials, Fields: map[string]any{"platforms": []any{"telegram"}}},
			want:  []string{"socials: platforms[0] must be an object"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.block)
			if got.Valid != (len(tc.want) == 0) {
				t.Fatalf("expected valid=%v, got %+v", len(tc.want) == 0, got)
			}
			if got.Errors == nil {
				t.Fatal("expected non-nil errors slice")
			}
			if len(tc.want) > 0 && !slices.Equal(got.Errors, tc.want) {
				t.Fatalf("expected errors %v, got %v", tc.want, got.Errors)
			}
		})
	}
}

func TestDefaultProfileValidates(t *testing.T) {
	block, err := NewBlock(TypeProfile, nil)
	if err != nil {
		t.Fatalf("new profile: %v", err)
	}
	if res := block.Validate(); !res.Valid {
		t.Fatalf("default profile should validate: %v", res.Errors)
	}
}
