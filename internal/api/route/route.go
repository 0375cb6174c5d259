package route

import (
	"net/http"

	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/bassista/go_folio/internal/app"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the engine with middleware, the page, the JSON API and
// the live locale feed.
func SetupRoutes(appCtx *app.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(appCtx.Config.Reporting, logger.WithComponent("honeybadger")))
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog(logger.WithComponent("http")))
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))
	r.SetHTMLTemplate(appCtx.Renderer.Template())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	timeout := appCtx.Config.Server.RequestTimeout
	publicRouter := r.Group("")
	apiRouter := r.Group("/api")

	themes := NewThemeRouter(timeout, apiRouter, appCtx.Config.Theme)
	NewContentRouter(timeout, apiRouter, appCtx.Content)
	NewDashboardRouter(timeout, apiRouter, appCtx.Bars, appCtx.Config.Dashboard.ReducedMotion)
	NewLocaleRouter(timeout, publicRouter, appCtx.Widget, appCtx.Config.Server.CORSAllowedOrigins)
	NewUIRouter(timeout, r, appCtx, themes)

	return r
}
