package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter decodes the YAML (or TOML/JSON) front matter of source into
// out and returns the Markdown body without delimiters. A document without
// front matter leaves out untouched.
func ParseFrontMatter(source []byte, out any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), out)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
