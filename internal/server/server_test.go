package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ujwalkandi/docweb/internal/document"
	"github.com/ujwalkandi/docweb/internal/home"
	"github.com/ujwalkandi/docweb/internal/providers"
	"github.com/ujwalkandi/docweb/internal/server/endpoints"
	"github.com/ujwalkandi/docweb/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{
		Home:   h,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return srv
}

// stageSession registers a session whose PDF path points at a real file, so
// the extract endpoint can read it. The content never reaches a real OCR
// service in tests.
func stageSession(t *testing.T, srv *Server) session.Session {
	t.Helper()
	pdfPath := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}
	return srv.Sessions().Create("doc.pdf", pdfPath, 13, 1)
}

func doJSON(t *testing.T, srv *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[endpoints.HealthResponse](t, rec)
	if resp.Status != "ok" {
		t.Errorf("unexpected status %q", resp.Status)
	}
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t)
	srv.Registry().RegisterExtractor("mock", providers.NewMockExtractor())
	stageSession(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[endpoints.StatusResponse](t, rec)
	if resp.Server != "running" {
		t.Errorf("unexpected server state %q", resp.Server)
	}
	if len(resp.Providers.Extractors) != 1 || resp.Providers.Extractors[0] != "mock" {
		t.Errorf("unexpected extractors %v", resp.Providers.Extractors)
	}
	if resp.Sessions != 1 {
		t.Errorf("expected 1 session, got %d", resp.Sessions)
	}
}

func TestPipeline(t *testing.T) {
	srv := newTestServer(t)
	srv.Registry().RegisterExtractor("mock", providers.NewMockExtractor())
	srv.Registry().RegisterGenerator("mock", providers.NewMockGenerator())
	s := stageSession(t, srv)

	t.Run("extract", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/extract",
			endpoints.ExtractRequest{Extractor: "mock"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[endpoints.ExtractResponse](t, rec)
		if resp.Pages != 1 || resp.PageErrors != 0 {
			t.Errorf("unexpected extract response %#v", resp)
		}
		if resp.Characters == 0 {
			t.Error("expected character count")
		}
	})

	t.Run("markdown", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/markdown",
			endpoints.MarkdownRequest{Author: "Tester", Date: "2026-08-26"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[endpoints.MarkdownResponse](t, rec)
		if !strings.HasPrefix(resp.Markdown, "---\ntitle: doc\nauthor: Tester\ndate: 2026-08-26\n---\n") {
			t.Errorf("unexpected front matter in %q", resp.Markdown)
		}
		if !strings.Contains(resp.Markdown, "# Mock Page") {
			t.Error("expected page content in document")
		}
	})

	t.Run("html via service", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/html",
			endpoints.HTMLRequest{Generator: "mock"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[endpoints.HTMLResponse](t, rec)
		if resp.Source != providers.MockName {
			t.Errorf("expected mock source, got %q", resp.Source)
		}
		if resp.Reason != "" {
			t.Errorf("expected no reason on success, got %q", resp.Reason)
		}
	})

	t.Run("html without service falls back", func(t *testing.T) {
		f := false
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/html",
			endpoints.HTMLRequest{UseAPI: &f})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		resp := decode[endpoints.HTMLResponse](t, rec)
		if resp.Source != "fallback" {
			t.Errorf("expected fallback source, got %q", resp.Source)
		}
	})

	t.Run("download artifacts", func(t *testing.T) {
		for artifact, wantType := range map[string]string{
			"html":     "text/html",
			"markdown": "text/markdown",
			"json":     "application/json",
		} {
			rec := doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID+"/download/"+artifact, nil)
			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", artifact, rec.Code)
				continue
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, wantType) {
				t.Errorf("%s: unexpected content type %q", artifact, ct)
			}
			if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
				t.Errorf("%s: expected attachment disposition, got %q", artifact, cd)
			}
		}
	})

	t.Run("download json round trips", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID+"/download/json", nil)
		pages, err := document.ParsePages(rec.Body.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if len(pages) != 1 || pages[0].Markdown != "# Mock Page\n\nmock content" {
			t.Errorf("unexpected pages %#v", pages)
		}
	})

	t.Run("unknown artifact", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID+"/download/epub", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("list and get", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/documents", nil)
		resp := decode[endpoints.ListDocumentsResponse](t, rec)
		if len(resp.Documents) != 1 || !resp.Documents[0].HasHTML {
			t.Errorf("unexpected listing %#v", resp.Documents)
		}

		rec = doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID, nil)
		got := decode[session.Session](t, rec)
		if got.ID != s.ID || got.Markdown == "" {
			t.Error("expected full session with pipeline outputs")
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodDelete, "/api/documents/"+s.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}

		rec = doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})
}

func TestExtractErrors(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		srv := newTestServer(t)
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/nope/extract", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("extractor not configured", func(t *testing.T) {
		srv := newTestServer(t)
		s := stageSession(t, srv)

		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/extract",
			endpoints.ExtractRequest{Extractor: "paddleocr-vl"})
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})

	t.Run("extraction failure keeps previous pages", func(t *testing.T) {
		srv := newTestServer(t)
		ext := providers.NewMockExtractor()
		srv.Registry().RegisterExtractor("mock", ext)
		s := stageSession(t, srv)

		// First pass succeeds.
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/extract",
			endpoints.ExtractRequest{Extractor: "mock"})
		if rec.Code != http.StatusOK {
			t.Fatalf("setup extract failed: %d", rec.Code)
		}

		// Second pass fails upstream.
		ext.ShouldFail = true
		rec = doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/extract",
			endpoints.ExtractRequest{Extractor: "mock"})
		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}

		got, err := srv.Sessions().Get(s.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Pages) != 1 {
			t.Error("failed extraction must not clobber existing pages")
		}
	})
}

func TestStepOrdering(t *testing.T) {
	srv := newTestServer(t)
	s := stageSession(t, srv)

	t.Run("markdown before extract", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/markdown", nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("html before markdown", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/documents/"+s.ID+"/html", nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("download before pipeline ran", func(t *testing.T) {
		for _, artifact := range []string{"html", "markdown", "json"} {
			rec := doJSON(t, srv, http.MethodGet, "/api/documents/"+s.ID+"/download/"+artifact, nil)
			if rec.Code != http.StatusNotFound {
				t.Errorf("%s: expected 404, got %d", artifact, rec.Code)
			}
		}
	})
}

func TestStaticFallback(t *testing.T) {
	srv := newTestServer(t)

	t.Run("root serves index", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>DocWeb</title>") {
			t.Error("expected the embedded UI")
		}
	})

	t.Run("unknown path falls back to index", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/some/client/route", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>DocWeb</title>") {
			t.Error("expected index fallback")
		}
	})
}
