// Package config loads docweb configuration with viper, supporting env
// overrides, ${ENV_VAR} credential expansion, and hot reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/ujwalkandi/docweb/internal/providers"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("extractors", defaults.Extractors)
	viper.SetDefault("generators", defaults.Generators)
	viper.SetDefault("defaults", defaults.Defaults)
	viper.SetDefault("theme", defaults.Theme)

	// Environment variables with DOCWEB_ prefix
	viper.SetEnvPrefix("DOCWEB")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.docweb")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// ToProviderRegistryConfig converts the config to a format suitable for
// providers.Registry. It resolves all ${ENV_VAR} references in URLs and
// credentials; unresolved values stay empty, which leaves the provider
// unregistered rather than failing startup.
func (c *Config) ToProviderRegistryConfig() providers.RegistryConfig {
	cfg := providers.RegistryConfig{
		Extractors: make(map[string]providers.ProviderConfig),
		Generators: make(map[string]providers.ProviderConfig),
	}

	for name, p := range c.Extractors {
		cfg.Extractors[name] = toProviderConfig(p)
	}
	for name, p := range c.Generators {
		cfg.Generators[name] = toProviderConfig(p)
	}

	return cfg
}

func toProviderConfig(p ProviderCfg) providers.ProviderConfig {
	return providers.ProviderConfig{
		Type:           p.Type,
		APIURL:         ResolveEnvVars(p.APIURL),
		AccessToken:    ResolveEnvVars(p.AccessToken),
		Model:          p.Model,
		TimeoutSeconds: p.TimeoutSeconds,
		Enabled:        p.Enabled,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# DocWeb configuration
# Credentials and endpoint URLs use ${ENV_VAR} syntax to reference environment variables.
# Set these in your shell or a .env file:
#   BAIDU_ACCESS_TOKEN=xxx PADDLEOCR_VL_API_URL=https://... ERNIE_API_URL=https://...

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
