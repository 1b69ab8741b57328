package config

import "github.com/ujwalkandi/docweb/internal/render"

// Config holds docweb configuration.
// Loaded from ./config.yaml or ~/.docweb/config.yaml.
type Config struct {
	Extractors map[string]ProviderCfg `mapstructure:"extractors" yaml:"extractors"`
	Generators map[string]ProviderCfg `mapstructure:"generators" yaml:"generators"`
	Defaults   DefaultsCfg            `mapstructure:"defaults" yaml:"defaults"`
	Theme      render.Theme           `mapstructure:"theme" yaml:"theme"`
}

// ProviderCfg configures one external service provider.
type ProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                       // "paddleocr-vl", "ppocr-v5", "ernie", "openai"
	APIURL         string `mapstructure:"api_url" yaml:"api_url"`                 // Endpoint URL (supports ${ENV_VAR} syntax)
	AccessToken    string `mapstructure:"access_token" yaml:"access_token"`       // Credential (supports ${ENV_VAR} syntax)
	Model          string `mapstructure:"model" yaml:"model"`                     // Model name (openai type)
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default provider selections.
type DefaultsCfg struct {
	Extractor string `mapstructure:"extractor" yaml:"extractor"`
	Generator string `mapstructure:"generator" yaml:"generator"`
}

// DefaultConfig returns configuration with sensible defaults. The env
// variable names match the original .env contract, so an existing
// deployment configures itself without a config file.
func DefaultConfig() *Config {
	return &Config{
		Extractors: map[string]ProviderCfg{
			"paddleocr-vl": {
				Type:           "paddleocr-vl",
				APIURL:         "${PADDLEOCR_VL_API_URL}",
				AccessToken:    "${BAIDU_ACCESS_TOKEN}",
				TimeoutSeconds: 300,
				Enabled:        true,
			},
			"ppocr-v5": {
				Type:           "ppocr-v5",
				APIURL:         "${PPOCR_V5_API_URL}",
				AccessToken:    "${BAIDU_ACCESS_TOKEN}",
				TimeoutSeconds: 300,
				Enabled:        false,
			},
		},
		Generators: map[string]ProviderCfg{
			"ernie": {
				Type:           "ernie",
				APIURL:         "${ERNIE_API_URL}",
				AccessToken:    "${BAIDU_ACCESS_TOKEN}",
				TimeoutSeconds: 60,
				Enabled:        true,
			},
			"openai": {
				Type:           "openai",
				Model:          "gpt-4o-mini",
				AccessToken:    "${OPENAI_API_KEY}",
				TimeoutSeconds: 60,
				Enabled:        false,
			},
		},
		Defaults: DefaultsCfg{
			Extractor: "paddleocr-vl",
			Generator: "ernie",
		},
		Theme: render.DefaultTheme(),
	}
}

// GetExtractor returns an extractor config by name.
func (c *Config) GetExtractor(name string) (ProviderCfg, bool) {
	cfg, ok := c.Extractors[name]
	return cfg, ok
}

// GetGenerator returns a generator config by name.
func (c *Config) GetGenerator(name string) (ProviderCfg, bool) {
	cfg, ok := c.Generators[name]
	return cfg, ok
}
