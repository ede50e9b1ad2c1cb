package i18n

import (
	"strings"
)

// Language identifies one of the page languages a Text value can carry.
type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
	LanguageKK Language = "kk"
)

// DefaultFallback is used when callers do not supply a fallback language.
const DefaultFallback = LanguageRU

var resolveOrder = []Language{LanguageRU, LanguageEN, LanguageKK}

// Languages returns the supported languages in resolution order.
func Languages() []Language {
	out := make([]Language, len(resolveOrder))
	copy(out, resolveOrder)
	return out
}

// ParseLanguage normalises a language code and reports whether it is supported.
func ParseLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	switch lang {
	case LanguageRU, LanguageEN, LanguageKK:
		return lang, true
	default:
		return "", false
	}
}

// Text is a string that may vary by language. Any subset of slots may be
// empty. Editors replace the whole value on change.
type Text struct {
	RU string `json:"ru,omitempty"`
	EN string `json:"en,omitempty"`
	KK string `json:"kk,omitempty"`
}

// Get returns the raw slot for lang without fallback.
func (t Text) Get(lang Language) string {
	switch lang {
	case LanguageRU:
		return t.RU
	case LanguageEN:
		return t.EN
	case LanguageKK:
		return t.KK
	default:
		return ""
	}
}

// With returns a copy of t with the slot for lang replaced.
func (t Text) With(lang Language, value string) Text {
	switch lang {
	case LanguageRU:
		t.RU = value
	case LanguageEN:
		t.EN = value
	case LanguageKK:
		t.KK = value
	}
	return t
}

// IsEmpty reports whether every slot is blank.
func (t Text) IsEmpty() bool {
	return strings.TrimSpace(t.RU) == "" && strings.TrimSpace(t.EN) == "" && strings.TrimSpace(t.KK) == ""
}

// Resolve returns the value for lang, then fallback, then ru, en, kk. A slot
// counts as set when it is not "", so whitespace is returned as stored. The
// result is "" only when every slot is empty.
func (t Text) Resolve(lang, fallback Language) string {
	if fallback == "" {
		fallback = DefaultFallback
	}
	candidates := append([]Language{lang, fallback}, resolveOrder...)
	for _, candidate := range candidates {
		if value := t.Get(candidate); value != "" {
			return value
		}
	}
	return ""
}

// Map returns the non-empty slots keyed by language code.
func (t Text) Map() map[string]any {
	out := make(map[string]any, 3)
	for _, lang := range resolveOrder {
		if value := t.Get(lang); value != "" {
			out[string(lang)] = value
		}
	}
	return out
}

// Resolve resolves a field value that may be a plain string or multilingual.
// Plain strings resolve to themselves. Unsupported values resolve to "".
func Resolve(value any, lang, fallback Language) string {
	if text, ok := value.(string); ok {
		return text
	}
	text, ok := FromValue(value)
	if !ok {
		return ""
	}
	return text.Resolve(lang, fallback)
}

// IsMultilingual distinguishes a multilingual value from a plain string.
// Maps count when they hold at least one language key.
func IsMultilingual(value any) bool {
	switch typed := value.(type) {
	case Text:
		return true
	case *Text:
		return typed != nil
	case map[string]any:
		return hasLanguageKey(typed)
	case map[string]string:
		for _, lang := range resolveOrder {
			if _, ok := typed[string(lang)]; ok {
				return true
			}
		}
	}
	return false
}

// MigrateToMultilingual copies a plain string into every language slot.
// Multilingual input is returned as a Text unchanged.
func MigrateToMultilingual(value any) Text {
	if text, ok := value.(string); ok {
		return Text{RU: text, EN: text, KK: text}
	}
	text, _ := FromValue(value)
	return text
}

// ConvertStringField is used when a page's language set changes. A plain
// string is copied into each target slot. Multilingual input keeps its
// content and only empty target slots are filled, using the resolved value.
func ConvertStringField(value any, targets []Language) Text {
	if source, ok := value.(string); ok {
		var out Text
		for _, lang := range targets {
			out = out.With(lang, source)
		}
		return out
	}

	out, ok := FromValue(value)
	if !ok {
		return Text{}
	}
	seed := out.Resolve(DefaultFallback, DefaultFallback)
	if seed == "" {
		return out
	}
	for _, lang := range targets {
		if out.Get(lang) == "" {
			out = out.With(lang, seed)
		}
	}
	return out
}

// FromValue converts Text, *Text or a decoded JSON object into a Text.
func FromValue(value any) (Text, bool) {
	switch typed := value.(type) {
	case Text:
		return typed, true
	case *Text:
		if typed == nil {
			return Text{}, false
		}
		return *typed, true
	case map[string]string:
		return Text{RU: typed["ru"], EN: typed["en"], KK: typed["kk"]}, true
	case map[string]any:
		if !hasLanguageKey(typed) {
			return Text{}, false
		}
		var out Text
		for _, lang := range resolveOrder {
			if raw, ok := typed[string(lang)].(string); ok {
				out = out.With(lang, raw)
			}
		}
		return out, true
	default:
		return Text{}, false
	}
}

// LooksLikeText reports whether m is exactly a serialized Text: only language
// keys with string values.
func LooksLikeText(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for key, value := range m {
		switch Language(key) {
		case LanguageRU, LanguageEN, LanguageKK:
		default:
			return false
		}
		if _, ok := value.(string); !ok {
			return false
		}
	}
	return true
}

func hasLanguageKey(m map[string]any) bool {
	for _, lang := range resolveOrder {
		if _, ok := m[string(lang)]; ok {
			return true
		}
	}
	return false
}
