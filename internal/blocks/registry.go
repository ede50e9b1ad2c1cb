package blocks

import (
	"sort"

	"github.com/linkmax/lnkmx/internal/i18n"
)

// Kind describes how a required payload field is checked.
type Kind int

const (
	// KindString requires a non-blank plain string.
	KindString Kind = iota + 1
	// KindMultilingual requires a multilingual value with a non-empty slot.
	KindMultilingual
	// KindLocalized accepts either a non-blank string or a non-empty
	// multilingual value.
	KindLocalized
	// KindList requires a non-empty list; Items are checked on every entry.
	KindList
	// KindEach checks Items on every entry of an optional list.
	KindEach
	// KindNumber requires a number >= 0.
	KindNumber
)

// FieldRule declares one required field path of a variant payload.
type FieldRule struct {
	Path  string
	Kind  Kind
	Items []FieldRule
}

// Definition is the static registry entry for a block type.
type Definition struct {
	Type       Type
	Category   Category
	Premium    bool
	Rules      []FieldRule
	TitleField string
	// Texts lists optional top-level fields that hold localizable text.
	Texts    []string
	Defaults map[string]any
}

// DefaultProfileName is the placeholder name of a fresh profile block.
var DefaultProfileName = i18n.Text{RU: "Ваше имя", EN: "Your Name", KK: "Сіздің атыңыз"}

func str(path string) FieldRule { return FieldRule{Path: path, Kind: KindString} }
func ml(path string) FieldRule  { return FieldRule{Path: path, Kind: KindMultilingual} }
func loc(path string) FieldRule { return FieldRule{Path: path, Kind: KindLocalized} }
func num(path string) FieldRule { return FieldRule{Path: path, Kind: KindNumber} }
func list(path string, items ...FieldRule) FieldRule {
	return FieldRule{Path: path, Kind: KindList, Items: items}
}
func each(path string, items ...FieldRule) FieldRule {
	return FieldRule{Path: path, Kind: KindEach, Items: items}
}

var registry = map[Type]Definition{
	TypeProfile: {
		Category: CategoryBasic, Rules: []FieldRule{loc("name")}, TitleField: "name",
		Texts: []string{"bio"}, Defaults: map[string]any{"name": DefaultProfileName},
	},
	TypeLink:        {Category: CategoryBasic, Rules: []FieldRule{str("url"), loc("title")}, TitleField: "title"},
	TypeButton:      {Category: CategoryBasic, Rules: []FieldRule{loc("title"), str("url")}, TitleField: "title"},
	TypeSocials:     {Category: CategoryBasic, Rules: []FieldRule{list("platforms", str("platform"), str("url"))}, Texts: []string{"title"}, TitleField: "title"},
	TypeText:        {Category: CategoryBasic, Rules: []FieldRule{loc("content")}, TitleField: "content"},
	TypeAvatar:      {Category: CategoryBasic, Rules: []FieldRule{str("imageUrl")}, Texts: []string{"name", "subtitle"}, TitleField: "name"},
	TypeSeparator:   {Category: CategoryBasic, Defaults: map[string]any{"variant": "line"}},
	TypeImage:       {Category: CategoryMedia, Rules: []FieldRule{str("url")}, Texts: []string{"alt", "caption"}, TitleField: "caption"},
	TypeVideo:       {Category: CategoryMedia, Premium: true, Rules: []FieldRule{str("url")}, Texts: []string{"title"}, TitleField: "title"},
	TypeCarousel:    {Category: CategoryMedia, Premium: true, Rules: []FieldRule{list("images", str("url"))}, Texts: []string{"title"}, TitleField: "title"},
	TypeBeforeAfter: {Category: CategoryMedia, Rules: []FieldRule{str("beforeImage"), str("afterImage")}, Texts: []string{"title"}, TitleField: "title"},
	TypeForm: {
		Category: CategoryInteractive, Premium: true,
		Rules:      []FieldRule{loc("title"), list("fields", loc("label"))},
		TitleField: "title",
	},
	TypeNewsletter: {Category: CategoryInteractive, Premium: true, Rules: []FieldRule{loc("title")}, Texts: []string{"description"}, TitleField: "title"},
	TypeScratch:    {Category: CategoryInteractive, Rules: []FieldRule{loc("revealText")}, Texts: []string{"title"}, TitleField: "title"},
	TypeMap:        {Category: CategoryInteractive, Rules: []FieldRule{str("address")}, Texts: []string{"title"}, TitleField: "title"},
	TypeFAQ:        {Category: CategoryInteractive, Rules: []FieldRule{list("items", loc("question"), loc("answer"))}, Texts: []string{"title"}, TitleField: "title"},
	TypeCountdown:  {Category: CategoryInteractive, Rules: []FieldRule{str("targetDate")}, Texts: []string{"title"}, TitleField: "title"},
	TypeProduct:    {Category: CategoryCommerce, Rules: []FieldRule{loc("name"), num("price")}, Texts: []string{"description"}, TitleField: "name"},
	TypeDownload:   {Category: CategoryCommerce, Rules: []FieldRule{str("fileUrl"), loc("title")}, TitleField: "title"},
	TypeCatalog:    {Category: CategoryCommerce, Rules: []FieldRule{list("items", loc("name"))}, Texts: []string{"title"}, TitleField: "title"},
	TypePricing: {
		Category: CategoryCommerce, Rules: []FieldRule{list("items", loc("name"), num("price"))},
		Texts: []string{"title"}, TitleField: "title",
	},
	TypeCustomCode:  {Category: CategoryAdvanced, Premium: true, Rules: []FieldRule{str("html")}, Texts: []string{"title"}, TitleField: "title"},
	TypeMessenger:   {Category: CategorySocial, Rules: []FieldRule{list("messengers", str("platform"), str("username"))}, Texts: []string{"title"}, TitleField: "title"},
	TypeTestimonial: {Category: CategorySocial, Rules: []FieldRule{list("testimonials", str("name"), loc("text"))}, Texts: []string{"title"}, TitleField: "title"},
	TypeShoutout:    {Category: CategorySocial, Rules: []FieldRule{str("userId")}, Texts: []string{"message"}, TitleField: "message"},
	TypeCommunity:   {Category: CategorySocial, Rules: []FieldRule{loc("title")}, Texts: []string{"description"}, TitleField: "title"},
	TypeBooking:     {Category: CategoryServices, Rules: []FieldRule{loc("title")}, Texts: []string{"description"}, TitleField: "title"},
	TypeEvent: {
		Category: CategoryServices,
		Rules:    []FieldRule{ml("title"), each("formFields", ml("label"))},
		Texts:    []string{"description", "location"}, TitleField: "title",
	},
}

var orderedTypes = func() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}()

// Lookup returns the registry entry for t.
func Lookup(t Type) (Definition, bool) {
	def, ok := registry[t]
	if !ok {
		return Definition{}, false
	}
	def.Type = t
	return def, true
}

// IsKnown reports whether t belongs to the closed set of block types.
func IsKnown(t Type) bool {
	_, ok := registry[t]
	return ok
}

// CategoryOf returns the picker category of t, or "" for unknown types.
func CategoryOf(t Type) Category {
	return registry[t].Category
}

// IsPremiumGated reports whether t is flagged for paid plans. Enforcement
// belongs to the entitlement layer.
func IsPremiumGated(t Type) bool {
	return registry[t].Premium
}

// Types returns every block type sorted by tag.
func Types() []Type {
	out := make([]Type, len(orderedTypes))
	copy(out, orderedTypes)
	return out
}

// Definitions returns every registry entry sorted by tag.
func Definitions() []Definition {
	out := make([]Definition, 0, len(orderedTypes))
	for _, t := range orderedTypes {
		def, _ := Lookup(t)
		out = append(out, def)
	}
	return out
}

// ByCategory returns the types grouped under category, sorted by tag.
func ByCategory(category Category) []Type {
	var out []Type
	for _, t := range orderedTypes {
		if registry[t].Category == category {
			out = append(out, t)
		}
	}
	return out
}

// LocalizableFields lists the field paths of t that hold localizable text.
// List item fields are written as "list[].field".
func LocalizableFields(t Type) []string {
	def, ok := registry[t]
	if !ok {
		return nil
	}
	var out []string
	var walk func(prefix string, rules []FieldRule)
	walk = func(prefix string, rules []FieldRule) {
		for _, rule := range rules {
			switch rule.Kind {
			case KindMultilingual, KindLocalized:
				out = append(out, prefix+rule.Path)
			case KindList, KindEach:
				walk(prefix+rule.Path+"[].", rule.Items)
			}
		}
	}
	walk("", def.Rules)
	out = append(out, def.Texts...)
	return out
}
