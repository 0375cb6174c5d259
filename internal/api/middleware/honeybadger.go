package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/bassista/go_folio/internal/config"
	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// notify is swapped in tests.
var notify = honeybadger.Notify

// HoneybadgerMiddleware reports panics and failed requests when an API key
// is configured. A panic is reported and then re-raised for gin.Recovery.
func HoneybadgerMiddleware(cfg config.ReportingConfig, log *logrus.Entry) gin.HandlerFunc {
	if cfg.HoneybadgerAPIKey == "" {
		log.Info("Error reporting is off. Set reporting.honeybadger_api_key or HONEYBADGER_API_KEY to enable it.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: cfg.HoneybadgerAPIKey,
		Env:    cfg.Environment,
	})
	log.WithField("env", cfg.Environment).Info("Honeybadger error reporting is enabled.")
	return reportFailures(log)
}

func reportFailures(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				route := routeOf(c)
				_, _ = notify(fmt.Sprintf("panic on %s: %v", route, rec), c.Request,
					honeybadger.Context{"route": route, "stack": string(debug.Stack())},
					honeybadger.Tags{"panic", "http"})
				log.WithField("route", route).Errorf("panic reported: %v", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if !reportable(status) {
			return
		}
		route := routeOf(c)
		tag := "4XX"
		if status >= 500 {
			tag = "5XX"
		}
		extra := honeybadger.Context{"route": route, "status": status}
		if len(c.Errors) > 0 {
			extra["errors"] = c.Errors.String()
		}
		_, _ = notify(fmt.Sprintf("HTTP %d on %s", status, route), c.Request, extra, honeybadger.Tags{tag, "http"})
		log.WithField("route", route).WithField("status", status).Warn("failed request reported")
	}
}

// reportable skips successes and unknown paths, which the UI router
// already answers with a redirect or a JSON 404.
func reportable(status int) bool {
	return status >= 400 && status != 404
}

// routeOf names a request by its registered route so notices group per
// handler instead of per raw URL.
func routeOf(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}
