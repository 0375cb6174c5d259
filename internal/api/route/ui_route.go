package route

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bassista/go_folio/internal/api/controller"
	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/bassista/go_folio/internal/app"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/bassista/go_folio/internal/render"
	"github.com/gin-gonic/gin"
)

// NewUIRouter serves the page at / and static assets under /assets. Assets
// come from the configured directory when it exists, otherwise from the
// files built into the binary.
func NewUIRouter(timeout time.Duration, r *gin.Engine, appCtx *app.App, themes *controller.ThemeController) {
	dir := appCtx.Config.Server.AssetsDir
	if info, err := os.Stat(dir); dir != "" && err == nil && info.IsDir() {
		logger.WithComponent("http").WithField("dir", dir).Info("Serving assets from disk")
		r.Static("/assets", dir)
	} else {
		r.StaticFS("/assets", http.FS(render.Assets()))
	}

	pc := controller.NewPageController(appCtx.Content, appCtx.Widget, appCtx.Bars, themes, appCtx.Config.Dashboard.ReducedMotion)
	r.GET("/", middleware.RequestTimeout(timeout), pc.Index)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
