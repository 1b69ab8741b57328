package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/ujwalkandi/docweb/internal/providers"
	"github.com/ujwalkandi/docweb/internal/render"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	theme := render.DefaultTheme()
	const md = "# Title\n\n- one\n- two"

	t.Run("nil client falls back immediately", func(t *testing.T) {
		g := New(nil, theme, nil)

		res := g.Generate(ctx, md, "Title")

		if res.Source != FallbackSource {
			t.Errorf("expected fallback source, got %q", res.Source)
		}
		if res.Reason == "" {
			t.Error("expected a reason for skipping the service")
		}
		want := render.Document(render.Fragment(md), "Title", theme)
		if res.HTML != want {
			t.Error("fallback output must equal the deterministic rendering")
		}
	})

	t.Run("service success passes through", func(t *testing.T) {
		mock := providers.NewMockGenerator()
		g := New(mock, theme, nil)

		res := g.Generate(ctx, md, "Title")

		if res.Source != providers.MockName {
			t.Errorf("expected provider source, got %q", res.Source)
		}
		if res.Reason != "" {
			t.Errorf("expected empty reason on success, got %q", res.Reason)
		}
		if res.HTML != mock.Response {
			t.Error("expected the provider document verbatim")
		}
		if mock.Calls() != 1 {
			t.Errorf("expected exactly one attempt, got %d", mock.Calls())
		}
	})

	t.Run("service failure falls back silently", func(t *testing.T) {
		mock := providers.NewMockGenerator()
		mock.ShouldFail = true
		mock.Err = errors.New("service exploded")
		g := New(mock, theme, nil)

		res := g.Generate(ctx, md, "Title")

		if res.Source != FallbackSource {
			t.Errorf("expected fallback, got %q", res.Source)
		}
		if res.Reason != "service exploded" {
			t.Errorf("expected failure reason, got %q", res.Reason)
		}
		want := render.Document(render.Fragment(md), "Title", theme)
		if res.HTML != want {
			t.Error("fallback output must equal the deterministic rendering")
		}
		if mock.Calls() != 1 {
			t.Errorf("failures must not be retried, got %d calls", mock.Calls())
		}
	})

	t.Run("invalid response falls back", func(t *testing.T) {
		mock := providers.NewMockGenerator()
		mock.ShouldFail = true
		mock.Err = providers.ErrInvalidResponse
		g := New(mock, theme, nil)

		res := g.Generate(ctx, md, "Title")
		if res.Source != FallbackSource {
			t.Errorf("expected fallback, got %q", res.Source)
		}
	})

	t.Run("result always has HTML", func(t *testing.T) {
		for _, g := range []*Generator{
			New(nil, theme, nil),
			New(&providers.MockGenerator{ShouldFail: true}, theme, nil),
			New(providers.NewMockGenerator(), theme, nil),
		} {
			if res := g.Generate(ctx, md, "T"); res.HTML == "" {
				t.Error("Generate must always produce a document")
			}
		}
	})
}
