package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser extracts plain text from Markdown using the goldmark engine. It is
// stateless and safe for concurrent use.
type Parser struct {
	engine goldmark.Markdown
}

// NewParser builds a parser with the named goldmark extensions. With no names
// the GFM set is enabled. Unknown names are ignored.
func NewParser(extensions ...string) *Parser {
	return &Parser{
		engine: goldmark.New(goldmark.WithExtensions(collectExtensions(extensions)...)),
	}
}

var defaultParser = NewParser()

// FirstLine returns the text of the first block that has any, with inline
// markup stripped.
func FirstLine(source string) string {
	return defaultParser.FirstLine(source)
}

// PlainText returns every text block of source joined by newlines.
func PlainText(source string) string {
	return defaultParser.PlainText(source)
}

func (p *Parser) FirstLine(source string) string {
	lines := p.blocks(source, 1)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func (p *Parser) PlainText(source string) string {
	return strings.Join(p.blocks(source, 0), "\n")
}

// blocks collects the text of top-level blocks, stopping after limit
// non-empty blocks when limit > 0.
func (p *Parser) blocks(source string, limit int) []string {
	src := []byte(source)
	doc := p.engine.Parser().Parse(text.NewReader(src))

	var out []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		line := strings.TrimSpace(collectText(node, src))
		if line == "" {
			continue
		}
		out = append(out, line)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func collectText(node ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := n.(type) {
		case *ast.Text:
			b.Write(typed.Segment.Value(src))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(typed.Value)
		case *ast.AutoLink:
			b.Write(typed.URL(src))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				b.Write(segment.Value(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
