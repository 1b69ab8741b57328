// Package markdown assembles per-page extraction output into a single
// markdown document with optional YAML front matter.
package markdown

import (
	"strings"

	"github.com/ujwalkandi/docweb/internal/document"
)

// Separator joins page fragments in the assembled document.
const Separator = "\n\n---\n\n"

// Assemble joins page content in input order. Each page contributes its
// markdown field, falling back to plain text when markdown is empty. A page
// with neither still contributes an empty fragment, so its separators are
// preserved and page boundaries stay aligned.
func Assemble(pages []document.Page) string {
	fragments := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Markdown != "" {
			fragments = append(fragments, p.Markdown)
		} else {
			fragments = append(fragments, p.Text)
		}
	}
	return strings.Join(fragments, Separator)
}

// Metadata holds the recognized front-matter fields.
type Metadata struct {
	Title  string
	Author string
	Date   string
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Date == ""
}

// AddMetadata prepends a YAML front-matter block to doc. Only non-empty
// fields are emitted, each as a `key: value` line between `---` fences; the
// document body follows the closing fence unchanged. Values are written raw;
// downstream consumers accept unescaped strings.
func AddMetadata(doc string, meta Metadata) string {
	lines := []string{"---"}
	if meta.Title != "" {
		lines = append(lines, "title: "+meta.Title)
	}
	if meta.Author != "" {
		lines = append(lines, "author: "+meta.Author)
	}
	if meta.Date != "" {
		lines = append(lines, "date: "+meta.Date)
	}
	lines = append(lines, "---\n")

	return strings.Join(lines, "\n") + doc
}
