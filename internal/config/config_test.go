package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot
// leak into a test. t.Setenv restores the original values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"EXTRACT_MODEL", "EXTRACT_HOST", "EXTRACT_TIMEOUT", "EXTRACT_CACHE_SIZE",
		"EXTRACT_RETRY_FAILURES", "EXTRACT_REPAIR_JSON", "EXTRACT_JSON_MODE", "EXTRACT_LOG_LEVEL",
		"OLLAMA_HOST",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.False(t, cfg.RetryFailures)
	assert.False(t, cfg.RepairJSON)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
model: gemma3:4b
host: http://gpu-box:11434
timeout: 90s
cache_size: 256
retry_failures: true
repair_json: true
json_mode: true
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Model:         "gemma3:4b",
		Host:          "http://gpu-box:11434",
		Timeout:       90 * time.Second,
		CacheSize:     256,
		RetryFailures: true,
		RepairJSON:    true,
		JSONMode:      true,
		LogLevel:      "debug",
	}, cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "model: gemma3:4b\ncache_size: 256\n")

	t.Setenv("EXTRACT_MODEL", "qwen3:8b")
	t.Setenv("EXTRACT_CACHE_SIZE", "64")
	t.Setenv("EXTRACT_TIMEOUT", "5s")
	t.Setenv("EXTRACT_RETRY_FAILURES", "true")
	t.Setenv("EXTRACT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen3:8b", cfg.Model)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.RetryFailures)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EmptyEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACT_TIMEOUT", "")
	t.Setenv("EXTRACT_MODEL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestEnvKeyValue(t *testing.T) {
	key, value := envKeyValue("EXTRACT_CACHE_SIZE", "64")
	assert.Equal(t, "cache_size", key)
	assert.Equal(t, "64", value)

	key, _ = envKeyValue("EXTRACT_MODEL", "")
	assert.Empty(t, key)
}

func TestLoad_ZeroTimeoutDisables(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "timeout: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Timeout)

	t.Setenv("EXTRACT_TIMEOUT", "0s")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg.Timeout)
}

func TestLoad_FileKeepsUnsetDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "repair_json: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.RepairJSON)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestDefaultsYAML(t *testing.T) {
	assert.Equal(t, "model: \"qwen3:4b\"\ntimeout: 2m0s\ncache_size: 128\nlog_level: info\n", string(defaultsYAML()))
}

func TestLoad_OllamaHostFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OLLAMA_HOST", "http://ollama:11434")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434", cfg.Host)

	t.Setenv("EXTRACT_HOST", "http://override:11434")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://override:11434", cfg.Host)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to stat config file")

	_, err = Load(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = Load(writeConfig(t, "model: [unclosed"))
	assert.ErrorContains(t, err, "failed to load config file")

	_, err = Load(writeConfig(t, "cache_size: -1\n"))
	assert.ErrorContains(t, err, "cache_size must be positive")

	t.Setenv("EXTRACT_TIMEOUT", "-1s")
	_, err = Load("")
	assert.ErrorContains(t, err, "timeout must not be negative")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }},
		{name: "empty model", mutate: func(c *Config) { c.Model = "" }, wantErr: []string{"model is required"}},
		{
			name: "several",
			mutate: func(c *Config) {
				c.CacheSize = 0
				c.Timeout = -time.Second
			},
			wantErr: []string{"cache_size must be positive", "timeout must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Model: DefaultModel, Timeout: DefaultTimeout, CacheSize: DefaultCacheSize}
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
