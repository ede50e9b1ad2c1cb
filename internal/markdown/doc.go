// Package markdown reads the Markdown used by text blocks and page manifests:
// front matter extraction and plain-text summaries of a Markdown body.
package markdown
