package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutDownTimeout:    5 * time.Second,
			RequestTimeout:     2 * time.Second,
			CORSAllowedOrigins: "*",
		},
		Locale: LocaleConfig{
			Enabled:      true,
			GeoURL:       "https://ipapi.co",
			WeatherURL:   "https://api.open-meteo.com/v1/forecast",
			HTTPTimeout:  10 * time.Second,
			TickInterval: time.Second,
		},
		Theme: ThemeConfig{
			CookieName: "portfolio-theme",
		},
		Dashboard: DashboardConfig{
			ActivityInterval: 1200 * time.Millisecond,
		},
		Misc: MiscConfig{
			GinMode:   "release",
			LogFormat: "text",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().validate())
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"too high port", func(c *Config) { c.Server.Port = 65536 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"zero idle timeout", func(c *Config) { c.Server.IdleTimeout = 0 }},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutDownTimeout = 0 }},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
		{"unsupported content extension", func(c *Config) { c.Content.FilePath = "resume.toml" }},
		{"zero tick interval", func(c *Config) { c.Locale.TickInterval = 0 }},
		{"negative http timeout", func(c *Config) { c.Locale.HTTPTimeout = -time.Second }},
		{"negative refresh interval", func(c *Config) { c.Locale.RefreshInterval = -time.Minute }},
		{"missing geo url", func(c *Config) { c.Locale.GeoURL = "" }},
		{"unknown fallback timezone", func(c *Config) { c.Locale.FallbackTimezone = "Mars/Olympus_Mons" }},
		{"empty cookie name", func(c *Config) { c.Theme.CookieName = "" }},
		{"zero activity interval", func(c *Config) { c.Dashboard.ActivityInterval = 0 }},
		{"bad gin mode", func(c *Config) { c.Misc.GinMode = "verbose" }},
		{"bad log format", func(c *Config) { c.Misc.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestConfig_Validate_DisabledLocaleSkipsURLs(t *testing.T) {
	cfg := validConfig()
	cfg.Locale.Enabled = false
	cfg.Locale.GeoURL = ""
	cfg.Locale.WeatherURL = ""
	assert.NoError(t, cfg.validate())
}

func TestConfig_Validate_YAMLContent(t *testing.T) {
	cfg := validConfig()
	cfg.Content.FilePath = "./data/resume.yml"
	assert.NoError(t, cfg.validate())
}

func TestGetEnvOrDefault_EmptyValue(t *testing.T) {
	t.Setenv("TEST_EMPTY_VAR", "")
	assert.Equal(t, "default_value", getEnvOrDefault("TEST_EMPTY_VAR", "default_value"))
}

func TestGetEnvOrViperPort_InvalidEnv(t *testing.T) {
	t.Setenv("TEST_PORT_INVALID", "not_a_number")
	_, err := getEnvOrViperPort("TEST_PORT_INVALID", "server.port")
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GO_FOLIO_CONFIG_PATH", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Locale.TickInterval)
	assert.Equal(t, 10*time.Second, cfg.Locale.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Locale.RefreshInterval)
	assert.Equal(t, "portfolio-theme", cfg.Theme.CookieName)
	assert.Equal(t, 1200*time.Millisecond, cfg.Dashboard.ActivityInterval)
	assert.True(t, cfg.Locale.Enabled)
	assert.Empty(t, cfg.Content.FilePath)
}

func TestLoadConfig_WithCustomPort(t *testing.T) {
	t.Setenv("GO_FOLIO_CONFIG_PATH", t.TempDir())
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadConfig_WithInvalidPort(t *testing.T) {
	t.Setenv("GO_FOLIO_CONFIG_PATH", t.TempDir())
	t.Setenv("PORT", "not_a_port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
locale:
  tick_interval: 500ms
  fallback_timezone: America/Chicago
content:
  file_path: ./data/resume.yaml
misc:
  log_format: json
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("GO_FOLIO_CONFIG_PATH", dir)
	t.Setenv("GO_FOLIO_THEME_COOKIE_NAME", "folio-theme")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Locale.TickInterval)
	assert.Equal(t, "America/Chicago", cfg.Locale.FallbackTimezone)
	assert.Equal(t, "./data/resume.yaml", cfg.Content.FilePath)
	assert.Equal(t, "json", cfg.Misc.LogFormat)
	assert.Equal(t, "folio-theme", cfg.Theme.CookieName)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: [unclosed"), 0o644))
	t.Setenv("GO_FOLIO_CONFIG_PATH", dir)

	_, err := LoadConfig()
	assert.Error(t, err)
}
