package markdown

import (
	"strings"
	"testing"

	"github.com/ujwalkandi/docweb/internal/document"
)

func TestAssemble(t *testing.T) {
	t.Run("joins pages with separator in input order", func(t *testing.T) {
		pages := []document.Page{
			document.NewPage(1, "# Page One"),
			document.NewPage(2, "Page Two"),
			document.NewPage(3, "Page Three"),
		}

		got := Assemble(pages)
		want := "# Page One\n\n---\n\nPage Two\n\n---\n\nPage Three"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("prefers markdown over text", func(t *testing.T) {
		p := document.Page{PageNumber: 1, Text: "raw text", Markdown: "# styled"}

		got := Assemble([]document.Page{p})
		if got != "# styled" {
			t.Errorf("expected markdown field, got %q", got)
		}
	})

	t.Run("falls back to text when markdown is empty", func(t *testing.T) {
		p := document.Page{PageNumber: 1, Text: "plain ocr output"}

		got := Assemble([]document.Page{p})
		if got != "plain ocr output" {
			t.Errorf("expected text field, got %q", got)
		}
	})

	t.Run("empty page still contributes its separators", func(t *testing.T) {
		pages := []document.Page{
			document.NewPage(1, "A"),
			document.ErrorPage(2, "timeout"),
			document.NewPage(3, "C"),
		}

		got := Assemble(pages)
		want := "A" + Separator + Separator + "C"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if strings.Count(got, "---") != 2 {
			t.Errorf("expected 2 separators for 3 pages, got %d", strings.Count(got, "---"))
		}
	})

	t.Run("no pages yields empty document", func(t *testing.T) {
		if got := Assemble(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("single page has no separator", func(t *testing.T) {
		got := Assemble([]document.Page{document.NewPage(1, "only")})
		if got != "only" {
			t.Errorf("expected %q, got %q", "only", got)
		}
	})
}

func TestAddMetadata(t *testing.T) {
	t.Run("emits all fields", func(t *testing.T) {
		got := AddMetadata("# Body", Metadata{
			Title:  "My Doc",
			Author: "DocWeb",
			Date:   "2026-08-26",
		})

		want := "---\ntitle: My Doc\nauthor: DocWeb\ndate: 2026-08-26\n---\n# Body"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("skips empty fields", func(t *testing.T) {
		got := AddMetadata("body", Metadata{Title: "Only Title"})

		want := "---\ntitle: Only Title\n---\nbody"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if strings.Contains(got, "author:") || strings.Contains(got, "date:") {
			t.Error("empty fields must not be emitted")
		}
	})

	t.Run("emits bare fences when all fields are empty", func(t *testing.T) {
		got := AddMetadata("body", Metadata{})

		want := "---\n---\nbody"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("body is unchanged", func(t *testing.T) {
		body := "line one\n\nline two\n"
		got := AddMetadata(body, Metadata{Title: "t"})
		if !strings.HasSuffix(got, body) {
			t.Error("document body must pass through unchanged")
		}
	})
}

func TestMetadataIsZero(t *testing.T) {
	if !(Metadata{}).IsZero() {
		t.Error("empty metadata should be zero")
	}
	if (Metadata{Date: "2026-01-01"}).IsZero() {
		t.Error("metadata with a date is not zero")
	}
}
