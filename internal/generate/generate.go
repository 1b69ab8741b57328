// Package generate orchestrates HTML generation: one attempt against a
// configured generation service, with unconditional fallback to the
// deterministic renderer.
package generate

import (
	"context"
	"log/slog"

	"github.com/ujwalkandi/docweb/internal/providers"
	"github.com/ujwalkandi/docweb/internal/render"
)

// FallbackSource marks output produced by the deterministic renderer.
const FallbackSource = "fallback"

// Result is the outcome of a generation request. HTML is always populated;
// Source records where it came from and Reason why the service path was not
// used (empty on service success).
type Result struct {
	HTML   string `json:"html"`
	Source string `json:"source"`
	Reason string `json:"reason,omitempty"`
}

// Generator runs the generation stage. Client may be nil, in which case
// every request goes straight to the fallback renderer.
type Generator struct {
	client providers.Generator
	theme  render.Theme
	logger *slog.Logger
}

// New creates a Generator. A nil client is valid and means "not configured".
func New(client providers.Generator, theme render.Theme, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, theme: theme, logger: logger}
}

// Generate produces the final HTML document for the markdown. When a service
// client is configured it gets exactly one attempt; any failure - transport
// error, bad status, response without the DOCTYPE marker - degrades silently
// to the fallback renderer. Generate itself never fails.
func (g *Generator) Generate(ctx context.Context, markdownDoc, title string) Result {
	if g.client == nil {
		return Result{
			HTML:   g.fallback(markdownDoc, title),
			Source: FallbackSource,
			Reason: "no generation service configured",
		}
	}

	html, err := g.client.GenerateHTML(ctx, markdownDoc, title)
	if err != nil {
		g.logger.Warn("generation service failed, using fallback renderer",
			"provider", g.client.Name(), "error", err)
		return Result{
			HTML:   g.fallback(markdownDoc, title),
			Source: FallbackSource,
			Reason: err.Error(),
		}
	}

	return Result{HTML: html, Source: g.client.Name()}
}

func (g *Generator) fallback(markdownDoc, title string) string {
	return render.Document(render.Fragment(markdownDoc), title, g.theme)
}
