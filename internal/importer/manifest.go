package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/identity"
	"github.com/linkmax/lnkmx/internal/markdown"
	"github.com/linkmax/lnkmx/internal/pages"
)

var (
	ErrSlugMissing     = errors.New("importer: front matter slug is required")
	ErrUserMissing     = errors.New("importer: front matter user is required")
	ErrBlockEntry      = errors.New("importer: invalid block entry")
	ErrServiceRequired = errors.New("importer: page service is required to save")
)

// Manifest is the front matter of a page document.
type Manifest struct {
	Slug       string           `yaml:"slug" json:"slug" toml:"slug"`
	User       string           `yaml:"user" json:"user" toml:"user"`
	EditorMode string           `yaml:"editor_mode" json:"editor_mode" toml:"editor_mode"`
	Languages  []string         `yaml:"languages" json:"languages" toml:"languages"`
	SEO        *ManifestSEO     `yaml:"seo" json:"seo" toml:"seo"`
	Theme      *ManifestTheme   `yaml:"theme" json:"theme" toml:"theme"`
	Blocks     []map[string]any `yaml:"blocks" json:"blocks" toml:"blocks"`
}

type ManifestSEO struct {
	Title       string   `yaml:"title" json:"title" toml:"title"`
	Description string   `yaml:"description" json:"description" toml:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords" toml:"keywords"`
}

type ManifestTheme struct {
	BackgroundColor string `yaml:"background_color" json:"background_color" toml:"background_color"`
	TextColor       string `yaml:"text_color" json:"text_color" toml:"text_color"`
	ButtonColor     string `yaml:"button_color" json:"button_color" toml:"button_color"`
	Font            string `yaml:"font" json:"font" toml:"font"`
}

// Parse splits source into its manifest and Markdown body.
func Parse(source []byte) (Manifest, string, error) {
	var manifest Manifest
	body, err := markdown.ParseFrontMatter(source, &manifest)
	if err != nil {
		return Manifest{}, "", err
	}
	for i, entry := range manifest.Blocks {
		manifest.Blocks[i] = normalizeMap(entry)
	}
	return manifest, strings.TrimSpace(string(body)), nil
}

// BuildPage turns a manifest and body into a page. The page id is derived from
// the slug so repeated imports address the same page. A non-empty body becomes
// a trailing text block. user overrides the manifest user when set.
func BuildPage(manifest Manifest, body, user string) (pages.Page, error) {
	pageSlug, err := slug.Normalize(strings.TrimSpace(manifest.Slug))
	if err != nil || pageSlug == "" {
		return pages.Page{}, ErrSlugMissing
	}
	owner := strings.TrimSpace(user)
	if owner == "" {
		owner = strings.TrimSpace(manifest.User)
	}
	if owner == "" {
		return pages.Page{}, ErrUserMissing
	}

	page := pages.CreateDefault(owner)
	page.ID = identity.ImportedPageUUID(pageSlug)
	page.Slug = pageSlug
	page.Blocks = nil
	if mode := strings.TrimSpace(manifest.EditorMode); mode != "" {
		page.EditorMode = pages.EditorMode(mode)
	}
	if manifest.SEO != nil {
		page.SEO = pages.SEO{
			Title:       manifest.SEO.Title,
			Description: manifest.SEO.Description,
			Keywords:    append([]string{}, manifest.SEO.Keywords...),
		}
	}
	if manifest.Theme != nil {
		page.Theme = mergeTheme(page.Theme, *manifest.Theme)
	}

	for i, entry := range manifest.Blocks {
		b, err := blockFromEntry(entry)
		if err != nil {
			return pages.Page{}, fmt.Errorf("%w at %d: %v", ErrBlockEntry, i, err)
		}
		if err := page.AddBlock(b); err != nil {
			return pages.Page{}, fmt.Errorf("%w at %d: %v", ErrBlockEntry, i, err)
		}
	}
	if body != "" {
		if _, err := page.AppendNew(blocks.TypeText, map[string]any{"content": body}); err != nil {
			return pages.Page{}, err
		}
	}

	langs := i18n.Languages()
	if len(manifest.Languages) > 0 {
		langs = make([]i18n.Language, 0, len(manifest.Languages))
		for _, code := range manifest.Languages {
			langs = append(langs, i18n.Language(code))
		}
	}
	if err := page.SetLanguages(langs); err != nil {
		return pages.Page{}, err
	}
	return page, nil
}

func blockFromEntry(entry map[string]any) (blocks.Block, error) {
	typeName, _ := entry[blocks.KeyType].(string)
	t := blocks.Type(strings.TrimSpace(typeName))
	if !blocks.IsKnown(t) {
		return blocks.Block{}, fmt.Errorf("%w: %q", blocks.ErrUnknownType, typeName)
	}
	raw := make(map[string]any, len(entry)+1)
	for key, value := range entry {
		raw[key] = value
	}
	raw[blocks.KeyType] = string(t)
	if id, _ := raw[blocks.KeyID].(string); strings.TrimSpace(id) == "" {
		raw[blocks.KeyID] = blocks.GenerateID(t)
	}
	return blocks.FromMap(raw)
}

func mergeTheme(base pages.Theme, in ManifestTheme) pages.Theme {
	if v := strings.TrimSpace(in.BackgroundColor); v != "" {
		base.BackgroundColor = v
	}
	if v := strings.TrimSpace(in.TextColor); v != "" {
		base.TextColor = v
	}
	if v := strings.TrimSpace(in.ButtonColor); v != "" {
		base.ButtonColor = v
	}
	if v := strings.TrimSpace(in.Font); v != "" {
		base.Font = v
	}
	return base
}

// normalizeMap converts YAML decoded map[any]any values into map[string]any.
func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
