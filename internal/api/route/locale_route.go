package route

import (
	"time"

	"github.com/bassista/go_folio/internal/api/controller"
	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// NewLocaleRouter exposes the shared widget. The WebSocket route is left
// without a deadline by the timeout middleware.
func NewLocaleRouter(timeout time.Duration, group *gin.RouterGroup, source controller.LocaleSource, allowedOrigins string) {
	lc := controller.NewLocaleController(source, allowedOrigins)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("api/locale", timeoutMiddleware, lc.GetLocale)
	group.GET("ws/locale", timeoutMiddleware, lc.Stream)
}
