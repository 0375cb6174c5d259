package app

import (
	"net/http"

	"github.com/bassista/go_folio/internal/config"
	"github.com/bassista/go_folio/internal/locale"
	"github.com/bassista/go_folio/internal/logger"
)

// NewResolver builds the location pipeline from configuration. With the
// locale lookups disabled only the host fallback is used.
func NewResolver(cfg config.LocaleConfig) *locale.Resolver {
	tz := locale.DetectTimezone(cfg.FallbackTimezone)
	fallback := locale.Fallback(tz)
	logger.WithComponent("locale").
		WithField("timezone", fallback.Timezone).
		WithField("city", fallback.City).
		Debug("host fallback resolved")

	if !cfg.Enabled {
		return locale.NewResolver(nil, nil, fallback)
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return locale.NewResolver(
		locale.NewIPAPIClient(cfg.GeoURL, client),
		locale.NewOpenMeteoClient(cfg.WeatherURL, client),
		fallback,
		locale.WithLookupIP(cfg.LookupIP),
	)
}

// NewWidget builds an unmounted widget from configuration.
func NewWidget(cfg config.LocaleConfig) *locale.Widget {
	return locale.NewWidget(
		NewResolver(cfg),
		locale.NewClock(cfg.DisplayLanguage, nil),
		cfg.TickInterval,
		locale.WithRefresh(cfg.RefreshInterval),
	)
}
