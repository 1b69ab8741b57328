// Package document provides the page record types shared across the pipeline.
// This package has no dependencies on other docweb packages to avoid import cycles.
package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Page is one page of extraction output from the layout-parsing service.
// Field names match the JSON artifact format (data.json) exactly.
type Page struct {
	PageNumber int      `json:"page_number"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
	CharCount  int      `json:"char_count"`
	LineCount  int      `json:"line_count"`
	Markdown   string   `json:"markdown"`

	// Error is set when extraction failed for this page only.
	// Other pages are unaffected; partial success is a normal outcome.
	Error string `json:"error,omitempty"`

	// MarkdownImages counts images referenced by the page markdown.
	MarkdownImages int `json:"markdown_images,omitempty"`
}

// NewPage builds a page record from extracted markdown, computing the
// derived counts. Page numbers are 1-based.
func NewPage(num int, markdown string) Page {
	lines := nonBlankLines(markdown)
	return Page{
		PageNumber: num,
		Text:       markdown,
		Lines:      lines,
		CharCount:  len(markdown),
		LineCount:  len(lines),
		Markdown:   markdown,
	}
}

// ErrorPage builds a record for a page whose extraction failed.
func ErrorPage(num int, errMsg string) Page {
	return Page{
		PageNumber: num,
		Lines:      []string{},
		Error:      errMsg,
	}
}

// nonBlankLines returns the trimmed, non-empty lines of s.
func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// ParsePages decodes a data.json artifact back into page records.
// Returns an error if the payload is not a JSON array of objects.
func ParsePages(data []byte) ([]Page, error) {
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// MarshalPages renders pages as the pretty-printed JSON array served
// as data.json. HTML escaping is disabled so markdown survives verbatim.
func MarshalPages(pages []Page) ([]byte, error) {
	if pages == nil {
		pages = []Page{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
