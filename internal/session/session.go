// Package session holds per-conversion pipeline state. One session owns the
// uploaded file and every derived value; each pipeline step replaces its
// value wholesale and clears everything downstream of it.
package session

import (
	"time"

	"github.com/ujwalkandi/docweb/internal/document"
)

// Session is the state of one PDF-to-webpage conversion.
type Session struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	PDFPath   string    `json:"-"`
	SizeBytes int64     `json:"size_bytes"`
	PDFPages  int       `json:"pdf_pages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Pipeline outputs, set as each step completes.
	Pages      []document.Page `json:"pages,omitempty"`
	Markdown   string          `json:"markdown,omitempty"`
	HTML       string          `json:"html,omitempty"`
	HTMLSource string          `json:"html_source,omitempty"`
}

// WithPages returns a copy with new extraction output. Markdown and HTML are
// cleared: they were derived from the previous extraction.
func (s Session) WithPages(pages []document.Page) Session {
	s.Pages = pages
	s.Markdown = ""
	s.HTML = ""
	s.HTMLSource = ""
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithMarkdown returns a copy with a new assembled document. HTML is cleared.
func (s Session) WithMarkdown(markdown string) Session {
	s.Markdown = markdown
	s.HTML = ""
	s.HTMLSource = ""
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithHTML returns a copy with new generated HTML.
func (s Session) WithHTML(html, source string) Session {
	s.HTML = html
	s.HTMLSource = source
	s.UpdatedAt = time.Now().UTC()
	return s
}

// Summary is the lightweight listing view of a session: the step outputs are
// reported by size rather than content.
type Summary struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	PDFPages    int       `json:"pdf_pages"`
	Extracted   int       `json:"extracted_pages"`
	HasMarkdown bool      `json:"has_markdown"`
	HasHTML     bool      `json:"has_html"`
	HTMLSource  string    `json:"html_source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summarize builds the listing view.
func (s Session) Summarize() Summary {
	return Summary{
		ID:          s.ID,
		Filename:    s.Filename,
		SizeBytes:   s.SizeBytes,
		PDFPages:    s.PDFPages,
		Extracted:   len(s.Pages),
		HasMarkdown: s.Markdown != "",
		HasHTML:     s.HTML != "",
		HTMLSource:  s.HTMLSource,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
