package controller

import (
	"net/http"

	"github.com/bassista/go_folio/internal/dashboard"
	"github.com/gin-gonic/gin"
)

// HeightSource yields the current activity bar heights.
type HeightSource interface {
	Heights() []float64
}

type DashboardController struct {
	bars          HeightSource
	reducedMotion bool
}

func NewDashboardController(bars HeightSource, reducedMotion bool) *DashboardController {
	return &DashboardController{bars: bars, reducedMotion: reducedMotion}
}

type dashboardResponse struct {
	dashboard.Board
	Heights       []float64 `json:"heights"`
	ReducedMotion bool      `json:"reducedMotion"`
}

// GetDashboard returns the stat tiles and the current activity heights.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, dashboardResponse{
		Board:         dashboard.Stats(),
		Heights:       dc.bars.Heights(),
		ReducedMotion: dc.reducedMotion,
	})
}
