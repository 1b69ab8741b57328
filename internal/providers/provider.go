// Package providers implements clients for the external document services:
// layout-parsing extractors that turn a PDF into per-page markdown, and HTML
// generators that turn a markdown document into a styled page.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ujwalkandi/docweb/internal/document"
)

// ErrNotConfigured is returned when a provider is missing its endpoint URL
// or credential. Callers treat this as "the stage does not run", never as
// a crash.
var ErrNotConfigured = errors.New("provider not configured")

// ErrInvalidResponse is returned when a generation service replies with
// something that is not a usable HTML document.
var ErrInvalidResponse = errors.New("invalid response from generation service")

// APIError is a non-2xx reply from an external service.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error (%d): %s", e.Provider, e.Status, e.Message)
}

// Extractor turns a PDF into per-page markdown via an external OCR service.
// Separate from Generator because it has different timeout and result
// handling (page records vs a single document).
type Extractor interface {
	// Name returns the provider identifier (e.g., "paddleocr-vl").
	Name() string

	// ExtractPDF sends the PDF to the service and returns one record per
	// page. A page that fails to parse yields a record with its Error field
	// set rather than failing the whole call; partial success is normal.
	ExtractPDF(ctx context.Context, pdf []byte) ([]document.Page, error)
}

// Generator produces a complete styled HTML document from markdown.
// Implementations make at most one attempt per invocation; fallback
// handling lives in the orchestrator, not here.
type Generator interface {
	// Name returns the provider identifier (e.g., "ernie").
	Name() string

	// GenerateHTML returns a document beginning with "<!DOCTYPE". Anything
	// else is reported as ErrInvalidResponse.
	GenerateHTML(ctx context.Context, markdownDoc, title string) (string, error)
}
