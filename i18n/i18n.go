// Package i18n exposes the multilingual text value used by block payloads.
package i18n

import (
	internal "github.com/linkmax/lnkmx/internal/i18n"
)

type (
	Language = internal.Language
	Text     = internal.Text
)

const (
	LanguageRU      = internal.LanguageRU
	LanguageEN      = internal.LanguageEN
	LanguageKK      = internal.LanguageKK
	DefaultFallback = internal.DefaultFallback
)

func Languages() []Language { return internal.Languages() }

func ParseLanguage(code string) (Language, bool) { return internal.ParseLanguage(code) }

func Resolve(value any, lang, fallback Language) string {
	return internal.Resolve(value, lang, fallback)
}

func IsMultilingual(value any) bool { return internal.IsMultilingual(value) }

func MigrateToMultilingual(value any) Text { return internal.MigrateToMultilingual(value) }

func ConvertStringField(value any, targets []Language) Text {
	return internal.ConvertStringField(value, targets)
}

func FromValue(value any) (Text, bool) { return internal.FromValue(value) }
