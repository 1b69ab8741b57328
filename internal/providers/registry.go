package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to extractors and generators. It supports
// config-driven instantiation, hot reload, and thread-safe access.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
	generators map[string]Generator

	// last applied config per provider name, used to detect changes on reload
	extractorCfgs map[string]ProviderConfig
	generatorCfgs map[string]ProviderConfig

	logger *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors:    make(map[string]Extractor),
		generators:    make(map[string]Generator),
		extractorCfgs: make(map[string]ProviderConfig),
		generatorCfgs: make(map[string]ProviderConfig),
		logger:        slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterExtractor registers an extractor by name.
func (r *Registry) RegisterExtractor(name string, e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[name] = e
	if r.logger != nil {
		r.logger.Info("registered extractor", "name", name)
	}
}

// RegisterGenerator registers a generator by name.
func (r *Registry) RegisterGenerator(name string, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = g
	if r.logger != nil {
		r.logger.Info("registered generator", "name", name)
	}
}

// GetExtractor returns an extractor by name.
func (r *Registry) GetExtractor(name string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[name]
	if !ok {
		return nil, fmt.Errorf("extractor not found: %s", name)
	}
	return e, nil
}

// GetGenerator returns a generator by name.
func (r *Registry) GetGenerator(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("generator not found: %s", name)
	}
	return g, nil
}

// HasExtractor checks if an extractor is registered.
func (r *Registry) HasExtractor(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.extractors[name]
	return ok
}

// HasGenerator checks if a generator is registered.
func (r *Registry) HasGenerator(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.generators[name]
	return ok
}

// ListExtractors returns all registered extractor names.
func (r *Registry) ListExtractors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	return names
}

// ListGenerators returns all registered generator names.
func (r *Registry) ListGenerators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}

// ProviderConfig describes one provider instance with resolved credentials.
type ProviderConfig struct {
	Type           string // "paddleocr-vl", "ppocr-v5", "ernie", "openai"
	APIURL         string // Endpoint URL (paddle/ernie; base URL for openai)
	AccessToken    string // Resolved credential
	Model          string // Model name (openai)
	TimeoutSeconds int
	Enabled        bool
}

// complete reports whether the config has everything needed to make calls.
func (c ProviderConfig) complete() bool {
	if !c.Enabled || c.AccessToken == "" {
		return false
	}
	// The OpenAI SDK carries its own default base URL.
	if c.Type != "openai" && c.APIURL == "" {
		return false
	}
	return true
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	Extractors map[string]ProviderConfig
	Generators map[string]ProviderConfig
}

// NewRegistryFromConfig creates a registry with providers based on
// configuration. Only enabled providers with resolved credentials register.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.Reload(cfg)
	return r
}

// Reload updates the registry from new configuration. Providers that are no
// longer configured are dropped; providers with changed settings are
// re-created. A provider whose credential or URL is missing is simply not
// registered - the deterministic pipeline keeps working without it.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wantExtractors := make(map[string]bool)
	for name, pc := range cfg.Extractors {
		if !pc.complete() {
			continue
		}
		wantExtractors[name] = true

		if prev, ok := r.extractorCfgs[name]; ok && prev == pc {
			continue
		}
		if e := createExtractor(pc); e != nil {
			r.extractors[name] = e
			r.extractorCfgs[name] = pc
			if r.logger != nil {
				r.logger.Info("registered extractor", "name", name, "type", pc.Type)
			}
		}
	}
	for name := range r.extractors {
		if !wantExtractors[name] {
			delete(r.extractors, name)
			delete(r.extractorCfgs, name)
			if r.logger != nil {
				r.logger.Info("unregistered extractor", "name", name)
			}
		}
	}

	wantGenerators := make(map[string]bool)
	for name, pc := range cfg.Generators {
		if !pc.complete() {
			continue
		}
		wantGenerators[name] = true

		if prev, ok := r.generatorCfgs[name]; ok && prev == pc {
			continue
		}
		if g := createGenerator(pc); g != nil {
			r.generators[name] = g
			r.generatorCfgs[name] = pc
			if r.logger != nil {
				r.logger.Info("registered generator", "name", name, "type", pc.Type)
			}
		}
	}
	for name := range r.generators {
		if !wantGenerators[name] {
			delete(r.generators, name)
			delete(r.generatorCfgs, name)
			if r.logger != nil {
				r.logger.Info("unregistered generator", "name", name)
			}
		}
	}
}

func createExtractor(pc ProviderConfig) Extractor {
	timeout := time.Duration(pc.TimeoutSeconds) * time.Second
	switch pc.Type {
	case "paddleocr-vl":
		return NewPaddleOCRClient(PaddleOCRConfig{
			APIURL:      pc.APIURL,
			AccessToken: pc.AccessToken,
			Timeout:     timeout,
		})
	case "ppocr-v5":
		return NewPPOCRClient(PPOCRConfig{
			APIURL:      pc.APIURL,
			AccessToken: pc.AccessToken,
			Timeout:     timeout,
		})
	default:
		return nil
	}
}

func createGenerator(pc ProviderConfig) Generator {
	timeout := time.Duration(pc.TimeoutSeconds) * time.Second
	switch pc.Type {
	case "ernie":
		return NewERNIEClient(ERNIEConfig{
			APIURL:      pc.APIURL,
			AccessToken: pc.AccessToken,
			Timeout:     timeout,
		})
	case "openai":
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:  pc.AccessToken,
			Model:   pc.Model,
			BaseURL: pc.APIURL,
			Timeout: timeout,
		})
	default:
		return nil
	}
}
