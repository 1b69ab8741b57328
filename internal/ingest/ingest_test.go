package ingest

import (
	"testing"

	"github.com/ujwalkandi/docweb/internal/home"
)

func TestStageRejections(t *testing.T) {
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("non-pdf filename", func(t *testing.T) {
		if _, err := Stage(h, "sid", "notes.txt", []byte("hello")); err == nil {
			t.Error("expected rejection of non-PDF upload")
		}
	})

	t.Run("empty upload", func(t *testing.T) {
		if _, err := Stage(h, "sid", "empty.pdf", nil); err == nil {
			t.Error("expected rejection of empty upload")
		}
	})

	t.Run("garbage content", func(t *testing.T) {
		if _, err := Stage(h, "sid", "fake.pdf", []byte("not a pdf at all")); err == nil {
			t.Error("expected rejection of invalid PDF content")
		}
	})
}

func TestDiscard(t *testing.T) {
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Discarding a session that was never staged is fine.
	if err := Discard(h, "never-staged"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"book.pdf", "book"},
		{"My Document.PDF", "My Document"},
		{"archive.tar.pdf", "archive.tar"},
		{"/tmp/uploads/report.pdf", "report"},
		{"noextension", "noextension"},
	}
	for _, tc := range cases {
		if got := TitleFromFilename(tc.in); got != tc.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
