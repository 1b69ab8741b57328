package providers

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		r := NewRegistry()
		r.RegisterExtractor("mock", NewMockExtractor())

		e, err := r.GetExtractor("mock")
		if err != nil {
			t.Fatal(err)
		}
		if e.Name() != MockName {
			t.Errorf("unexpected extractor %s", e.Name())
		}
	})

	t.Run("get missing provider", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.GetExtractor("nope"); err == nil {
			t.Error("expected error for missing extractor")
		}
		if _, err := r.GetGenerator("nope"); err == nil {
			t.Error("expected error for missing generator")
		}
	})
}

func TestRegistryReload(t *testing.T) {
	complete := ProviderConfig{
		Type:        "paddleocr-vl",
		APIURL:      "https://example.com/layout-parsing",
		AccessToken: "tok",
		Enabled:     true,
	}

	t.Run("registers enabled providers with credentials", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": complete},
			Generators: map[string]ProviderConfig{
				"ernie": {Type: "ernie", APIURL: "https://example.com/chat", AccessToken: "tok", Enabled: true},
			},
		})

		if !r.HasExtractor("paddleocr-vl") {
			t.Error("expected paddleocr-vl registered")
		}
		if !r.HasGenerator("ernie") {
			t.Error("expected ernie registered")
		}
	})

	t.Run("skips providers missing credentials", func(t *testing.T) {
		r := NewRegistry()
		incomplete := complete
		incomplete.AccessToken = ""
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": incomplete},
		})

		if r.HasExtractor("paddleocr-vl") {
			t.Error("provider without credentials must not register")
		}
	})

	t.Run("skips disabled providers", func(t *testing.T) {
		r := NewRegistry()
		disabled := complete
		disabled.Enabled = false
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": disabled},
		})

		if r.HasExtractor("paddleocr-vl") {
			t.Error("disabled provider must not register")
		}
	})

	t.Run("openai generator registers without APIURL", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Generators: map[string]ProviderConfig{
				"openai": {Type: "openai", AccessToken: "sk-test", Model: "gpt-4o-mini", Enabled: true},
			},
		})

		if !r.HasGenerator("openai") {
			t.Error("openai generator should register with just a key")
		}
	})

	t.Run("drops providers removed from config", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": complete},
		})
		if !r.HasExtractor("paddleocr-vl") {
			t.Fatal("setup failed")
		}

		r.Reload(RegistryConfig{})
		if r.HasExtractor("paddleocr-vl") {
			t.Error("removed provider must be dropped on reload")
		}
	})

	t.Run("drops providers whose credentials disappear", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": complete},
		})

		incomplete := complete
		incomplete.AccessToken = ""
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": incomplete},
		})

		if r.HasExtractor("paddleocr-vl") {
			t.Error("provider losing its credential must be dropped")
		}
	})

	t.Run("unchanged providers keep their instance", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": complete},
		})
		first, _ := r.GetExtractor("paddleocr-vl")

		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{"paddleocr-vl": complete},
		})
		second, _ := r.GetExtractor("paddleocr-vl")

		if first != second {
			t.Error("identical config must not re-create the provider")
		}
	})

	t.Run("unknown provider type is ignored", func(t *testing.T) {
		r := NewRegistry()
		r.Reload(RegistryConfig{
			Extractors: map[string]ProviderConfig{
				"weird": {Type: "weird", APIURL: "https://x", AccessToken: "t", Enabled: true},
			},
		})
		if r.HasExtractor("weird") {
			t.Error("unknown type must not register")
		}
	})
}

func TestListProviders(t *testing.T) {
	r := NewRegistry()
	r.RegisterExtractor("a", NewMockExtractor())
	r.RegisterGenerator("b", NewMockGenerator())

	if got := r.ListExtractors(); len(got) != 1 || got[0] != "a" {
		t.Errorf("unexpected extractors %v", got)
	}
	if got := r.ListGenerators(); len(got) != 1 || got[0] != "b" {
		t.Errorf("unexpected generators %v", got)
	}
}
