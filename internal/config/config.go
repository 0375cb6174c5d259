package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Locale    LocaleConfig
	Theme     ThemeConfig
	Dashboard DashboardConfig
	Reporting ReportingConfig
	Misc      MiscConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
	AssetsDir          string
}

// ContentConfig points at the resume content file. An empty FilePath uses the embedded default.
type ContentConfig struct {
	FilePath string
	Watch    bool
}

// LocaleConfig drives the location/time/weather widget.
type LocaleConfig struct {
	Enabled          bool
	GeoURL           string
	WeatherURL       string
	LookupIP         string
	FallbackTimezone string
	DisplayLanguage  string
	HTTPTimeout      time.Duration
	TickInterval     time.Duration
	// RefreshInterval re-runs the geo and weather lookups; 0 looks up once.
	RefreshInterval time.Duration
}

type ThemeConfig struct {
	CookieName   string
	CookieMaxAge time.Duration
	FilePath     string
}

type DashboardConfig struct {
	ActivityInterval time.Duration
	ReducedMotion    bool
}

// ReportingConfig enables Honeybadger error reporting when an API key is set.
type ReportingConfig struct {
	HoneybadgerAPIKey string
	Environment       string
}

type MiscConfig struct {
	GinMode   string
	LogLevel  string
	LogFormat string
}

// LoadConfig reads config.yaml from GO_FOLIO_CONFIG_PATH (default ./config), then
// applies GO_FOLIO_* environment overrides. PORT overrides server.port.
func LoadConfig() (*Config, error) {
	viper.Reset()

	confPath := getEnvOrDefault("GO_FOLIO_CONFIG_PATH", "./config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(confPath)

	setDefaults()

	// GO_FOLIO_LOCALE_TICK_INTERVAL overrides locale.tick_interval
	viper.SetEnvPrefix("GO_FOLIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// the conventional Honeybadger variables work alongside the prefixed ones
	_ = viper.BindEnv("reporting.honeybadger_api_key", "GO_FOLIO_REPORTING_HONEYBADGER_API_KEY", "HONEYBADGER_API_KEY")
	_ = viper.BindEnv("reporting.environment", "GO_FOLIO_REPORTING_ENVIRONMENT", "GO_ENV")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
			AssetsDir:          viper.GetString("server.assets_dir"),
		},
		Content: ContentConfig{
			FilePath: viper.GetString("content.file_path"),
			Watch:    viper.GetBool("content.watch"),
		},
		Locale: LocaleConfig{
			Enabled:          viper.GetBool("locale.enabled"),
			GeoURL:           viper.GetString("locale.geo_url"),
			WeatherURL:       viper.GetString("locale.weather_url"),
			LookupIP:         viper.GetString("locale.lookup_ip"),
			FallbackTimezone: viper.GetString("locale.fallback_timezone"),
			DisplayLanguage:  viper.GetString("locale.display_language"),
			HTTPTimeout:      viper.GetDuration("locale.http_timeout"),
			TickInterval:     viper.GetDuration("locale.tick_interval"),
			RefreshInterval:  viper.GetDuration("locale.refresh_interval"),
		},
		Theme: ThemeConfig{
			CookieName:   viper.GetString("theme.cookie_name"),
			CookieMaxAge: viper.GetDuration("theme.cookie_max_age"),
			FilePath:     viper.GetString("theme.file_path"),
		},
		Dashboard: DashboardConfig{
			ActivityInterval: viper.GetDuration("dashboard.activity_interval"),
			ReducedMotion:    viper.GetBool("dashboard.reduced_motion"),
		},
		Reporting: ReportingConfig{
			HoneybadgerAPIKey: viper.GetString("reporting.honeybadger_api_key"),
			Environment:       viper.GetString("reporting.environment"),
		},
		Misc: MiscConfig{
			GinMode:   viper.GetString("misc.gin_mode"),
			LogLevel:  viper.GetString("misc.log_level"),
			LogFormat: viper.GetString("misc.log_format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 2*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")
	viper.SetDefault("server.assets_dir", "./ui/assets")

	viper.SetDefault("content.file_path", "")
	viper.SetDefault("content.watch", false)

	viper.SetDefault("locale.enabled", true)
	viper.SetDefault("locale.geo_url", "https://ipapi.co")
	viper.SetDefault("locale.weather_url", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("locale.lookup_ip", "")
	viper.SetDefault("locale.fallback_timezone", "")
	viper.SetDefault("locale.display_language", "en")
	viper.SetDefault("locale.http_timeout", 10*time.Second)
	viper.SetDefault("locale.tick_interval", time.Second)
	viper.SetDefault("locale.refresh_interval", 5*time.Minute)

	viper.SetDefault("theme.cookie_name", "portfolio-theme")
	viper.SetDefault("theme.cookie_max_age", 365*24*time.Hour)
	viper.SetDefault("theme.file_path", "")

	viper.SetDefault("dashboard.activity_interval", 1200*time.Millisecond)
	viper.SetDefault("dashboard.reduced_motion", false)

	viper.SetDefault("reporting.honeybadger_api_key", "")
	viper.SetDefault("reporting.environment", "")

	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.log_format", "text")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return errors.New("server read/write/idle timeouts must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server shutdown timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server request timeout must be positive")
	}

	if c.Content.FilePath != "" {
		switch strings.ToLower(filepath.Ext(c.Content.FilePath)) {
		case ".json", ".yaml", ".yml":
		default:
			return fmt.Errorf("unsupported content file extension: %s", c.Content.FilePath)
		}
	}

	if c.Locale.TickInterval <= 0 {
		return errors.New("locale tick interval must be positive")
	}
	if c.Locale.RefreshInterval < 0 {
		return errors.New("locale refresh interval must not be negative")
	}
	if c.Locale.HTTPTimeout < 0 {
		return errors.New("locale http timeout must not be negative")
	}
	if c.Locale.Enabled && (c.Locale.GeoURL == "" || c.Locale.WeatherURL == "") {
		return errors.New("locale geo_url and weather_url are required when the widget is enabled")
	}
	if c.Locale.FallbackTimezone != "" {
		if _, err := time.LoadLocation(c.Locale.FallbackTimezone); err != nil {
			return fmt.Errorf("invalid fallback timezone %q: %w", c.Locale.FallbackTimezone, err)
		}
	}

	if c.Theme.CookieName == "" {
		return errors.New("theme cookie name is required")
	}

	if c.Dashboard.ActivityInterval <= 0 {
		return errors.New("dashboard activity interval must be positive")
	}

	switch c.Misc.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode: %s", c.Misc.GinMode)
	}
	switch c.Misc.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Misc.LogFormat)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envKey, v, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
