package blocks

import (
	"github.com/linkmax/lnkmx/internal/i18n"
)

// ConvertLanguages returns a copy of b whose localizable fields are
// multilingual values covering langs. Existing slots are never overwritten.
func ConvertLanguages(b Block, langs []i18n.Language) Block {
	out := b.Clone()
	def, ok := Lookup(out.Type)
	if !ok || len(langs) == 0 {
		return out
	}
	convertRules(out.Fields, def.Rules, langs)
	for _, key := range def.Texts {
		convertField(out.Fields, key, langs)
	}
	return out
}

func convertRules(fields map[string]any, rules []FieldRule, langs []i18n.Language) {
	if fields == nil {
		return
	}
	for _, rule := range rules {
		switch rule.Kind {
		case KindMultilingual, KindLocalized:
			convertField(fields, rule.Path, langs)
		case KindList, KindEach:
			items, _ := asList(fields[rule.Path])
			for _, item := range items {
				if entry, ok := item.(map[string]any); ok {
					convertRules(entry, rule.Items, langs)
				}
			}
		}
	}
}

func convertField(fields map[string]any, key string, langs []i18n.Language) {
	value, ok := fields[key]
	if !ok || value == nil {
		return
	}
	if _, isString := value.(string); !isString && !i18n.IsMultilingual(value) {
		return
	}
	fields[key] = i18n.ConvertStringField(value, langs)
}
