// Package config loads extractor settings from defaults, an optional YAML
// file and EXTRACT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultModel     = "qwen3:4b"
	DefaultHost      = "http://localhost:11434"
	DefaultTimeout   = 2 * time.Minute
	DefaultCacheSize = 128
	DefaultLogLevel  = "info"
)

// Config is the complete extractor configuration.
type Config struct {
	// Model is the model identifier sent to the endpoint.
	Model string `koanf:"model"`

	// Host is the base URL of the Ollama server.
	Host string `koanf:"host"`

	// Timeout bounds each model request. Zero disables the limit.
	Timeout time.Duration `koanf:"timeout"`

	// CacheSize is the number of distinct inputs remembered.
	CacheSize int `koanf:"cache_size"`

	// RetryFailures stops unparseable replies from being remembered, so the
	// same input asks the model again.
	RetryFailures bool `koanf:"retry_failures"`

	// RepairJSON runs unparseable replies through jsonrepair first.
	RepairJSON bool `koanf:"repair_json"`

	// JSONMode asks Ollama to constrain replies to JSON (format: "json").
	JSONMode bool `koanf:"json_mode"`

	// LogLevel is one of trace, debug, info, warn or error.
	LogLevel string `koanf:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	cfg := &Config{
		Model:     DefaultModel,
		Timeout:   DefaultTimeout,
		CacheSize: DefaultCacheSize,
		LogLevel:  DefaultLogLevel,
	}
	applyDefaults(cfg)
	return cfg
}

// defaultsYAML is loaded before the file and environment, so an explicit
// zero (timeout: 0) overrides a default instead of being mistaken for unset.
func defaultsYAML() []byte {
	return fmt.Appendf(nil, "model: %q\ntimeout: %s\ncache_size: %d\nlog_level: %s\n",
		DefaultModel, DefaultTimeout, DefaultCacheSize, DefaultLogLevel)
}

// applyDefaults fills the fields whose default depends on the environment.
// OLLAMA_HOST is used for Host when neither the file nor EXTRACT_HOST set one.
func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = os.Getenv("OLLAMA_HOST")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if c.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("cache_size must be positive, got %d", c.CacheSize))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	return errors.Join(errs...)
}
