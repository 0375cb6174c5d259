package route

import (
	"time"

	"github.com/bassista/go_folio/internal/api/controller"
	"github.com/bassista/go_folio/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

func NewDashboardRouter(timeout time.Duration, group *gin.RouterGroup, bars controller.HeightSource, reducedMotion bool) {
	dc := controller.NewDashboardController(bars, reducedMotion)
	group.GET("dashboard", middleware.RequestTimeout(timeout), dc.GetDashboard)
}
