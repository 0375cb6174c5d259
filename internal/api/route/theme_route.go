package route

import (
	"time"

	"github.com/bassista/go_folio/internal/api/controller"
	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/bassista/go_folio/internal/config"
	"github.com/gin-gonic/gin"
)

// NewThemeRouter sets up the cookie-backed theme routes and returns the
// controller so the page can read the same preference.
func NewThemeRouter(timeout time.Duration, group *gin.RouterGroup, cfg config.ThemeConfig) *controller.ThemeController {
	tc := controller.NewThemeController(cfg)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("theme", timeoutMiddleware, tc.GetTheme)
	group.PUT("theme", timeoutMiddleware, tc.SetTheme)
	group.POST("theme/toggle", timeoutMiddleware, tc.Toggle)
	return tc
}
