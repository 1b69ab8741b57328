package providers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ujwalkandi/docweb/internal/document"
)

const MockName = "mock"

// MockExtractor is an Extractor for testing.
type MockExtractor struct {
	// Configurable behavior
	Pages      []document.Page
	ShouldFail bool
	Err        error

	// State
	callCount atomic.Int64
}

// NewMockExtractor creates a mock extractor returning a single page.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		Pages: []document.Page{document.NewPage(1, "# Mock Page\n\nmock content")},
	}
}

// Name returns the provider identifier.
func (m *MockExtractor) Name() string {
	return MockName
}

// ExtractPDF returns the configured pages or failure.
func (m *MockExtractor) ExtractPDF(ctx context.Context, pdf []byte) ([]document.Page, error) {
	m.callCount.Add(1)
	if m.ShouldFail {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, errors.New("mock extraction failure")
	}
	return m.Pages, nil
}

// Calls returns the number of ExtractPDF invocations.
func (m *MockExtractor) Calls() int {
	return int(m.callCount.Load())
}

// MockGenerator is a Generator for testing.
type MockGenerator struct {
	// Configurable behavior
	Response   string
	ShouldFail bool
	Err        error

	// State
	callCount atomic.Int64
}

// NewMockGenerator creates a mock generator returning a minimal document.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Response: "<!DOCTYPE html>\n<html><body>mock</body></html>",
	}
}

// Name returns the provider identifier.
func (m *MockGenerator) Name() string {
	return MockName
}

// GenerateHTML returns the configured document or failure.
func (m *MockGenerator) GenerateHTML(ctx context.Context, markdownDoc, title string) (string, error) {
	m.callCount.Add(1)
	if m.ShouldFail {
		if m.Err != nil {
			return "", m.Err
		}
		return "", errors.New("mock generation failure")
	}
	return m.Response, nil
}

// Calls returns the number of GenerateHTML invocations.
func (m *MockGenerator) Calls() int {
	return int(m.callCount.Load())
}
