package controller

import (
	"net/http"

	"github.com/bassista/go_folio/internal/dashboard"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/bassista/go_folio/internal/render"
	"github.com/gin-gonic/gin"
)

// PageController renders the single page. The theme comes from the
// visitor's cookie so the first paint already has the right colours.
type PageController struct {
	content       ContentSource
	locale        LocaleSource
	bars          HeightSource
	themes        *ThemeController
	reducedMotion bool
}

func NewPageController(content ContentSource, locale LocaleSource, bars HeightSource, themes *ThemeController, reducedMotion bool) *PageController {
	return &PageController{
		content:       content,
		locale:        locale,
		bars:          bars,
		themes:        themes,
		reducedMotion: reducedMotion,
	}
}

// Index renders the page template registered on the engine.
func (pc *PageController) Index(c *gin.Context) {
	resume, err := pc.content.Get()
	if err != nil {
		logger.WithComponent("page").WithError(err).Error("cannot render page")
		c.String(http.StatusServiceUnavailable, "content unavailable")
		return
	}

	data := render.NewPageData(resume, pc.themes.StoreFor(c).Read(), pc.locale.Display(), dashboard.Stats(), pc.bars.Heights())
	data.ReducedMotion = pc.reducedMotion
	c.HTML(http.StatusOK, render.PageTemplate, data)
}
