package records

import (
	"strings"

	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/markdown"
)

const maxTitleLength = 120

// DefaultTitleExtractor labels blocks from the registry title field, resolved
// in lang. Text blocks use the first line of their Markdown body.
func DefaultTitleExtractor(lang i18n.Language) TitleExtractor {
	return func(block blocks.Block) *string {
		def, ok := blocks.Lookup(block.Type)
		if !ok || def.TitleField == "" {
			return nil
		}
		value, ok := block.Value(def.TitleField)
		if !ok {
			return nil
		}
		title := strings.TrimSpace(i18n.Resolve(value, lang, i18n.DefaultFallback))
		if block.Type == blocks.TypeText {
			title = markdown.FirstLine(title)
		}
		if title == "" {
			return nil
		}
		if runes := []rune(title); len(runes) > maxTitleLength {
			title = strings.TrimSpace(string(runes[:maxTitleLength]))
		}
		return &title
	}
}
