// Package ingest handles uploaded PDF staging and validation.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ujwalkandi/docweb/internal/home"
)

// MaxUploadBytes is the upload size limit (100MB, matching the UI hint).
const MaxUploadBytes = 100 << 20

// Result describes a staged upload.
type Result struct {
	Filename  string
	Path      string
	SizeBytes int64
	PageCount int
}

// Stage validates PDF content and writes it into the session's staging
// directory under the docweb home. Validation is relaxed: many real-world
// scans bend the PDF spec, and the extraction service is tolerant of them.
func Stage(homeDir *home.Dir, sessionID, filename string, pdf []byte) (*Result, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, fmt.Errorf("file %s is not a PDF", filename)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	if len(pdf) > MaxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %dMB limit", MaxUploadBytes>>20)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	dir := homeDir.SessionUploadDir(sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	// Keep only the base name; uploads may carry path separators.
	dest := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(dest, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	return &Result{
		Filename:  filepath.Base(filename),
		Path:      dest,
		SizeBytes: int64(len(pdf)),
		PageCount: pageCount,
	}, nil
}

// Discard removes a session's staged upload. Missing directories are fine.
func Discard(homeDir *home.Dir, sessionID string) error {
	return os.RemoveAll(homeDir.SessionUploadDir(sessionID))
}

// TitleFromFilename derives a page title from an uploaded filename,
// stripping the extension the way the original UI did.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
