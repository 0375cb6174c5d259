package route

import (
	"time"

	"github.com/bassista/go_folio/internal/api/controller"
	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// NewContentRouter sets up resume routes.
func NewContentRouter(timeout time.Duration, group *gin.RouterGroup, source controller.ContentSource) {
	cc := controller.NewContentController(source)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("resume", timeoutMiddleware, cc.GetResume)
	group.GET("resume/person", timeoutMiddleware, cc.GetPerson)
}
