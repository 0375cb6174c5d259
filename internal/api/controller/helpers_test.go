package controller

import (
	"context"
	"time"

	"github.com/bassista/go_folio/internal/content"
	"github.com/bassista/go_folio/internal/locale"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGeo struct {
	pos locale.Position
}

func (s stubGeo) Locate(context.Context, string) (locale.Position, error) {
	return s.pos, nil
}

func newFallbackWidget() *locale.Widget {
	r := locale.NewResolver(nil, nil, locale.Fallback("America/Chicago"))
	return locale.NewWidget(r, locale.NewClock("en", nil), 10*time.Millisecond)
}

func newDallasWidget() *locale.Widget {
	r := locale.NewResolver(stubGeo{pos: locale.Position{City: "Dallas", Region: "Texas", Timezone: "America/Chicago"}}, nil, locale.Fallback("America/New_York"))
	return locale.NewWidget(r, locale.NewClock("en", nil), 10*time.Millisecond)
}

type staticBars []float64

func (s staticBars) Heights() []float64 { return s }

type emptyContent struct{}

func (emptyContent) Get() (*content.Resume, error) { return nil, content.ErrNoContent }

func defaultHolder() *content.Holder {
	r, err := content.Default()
	if err != nil {
		panic(err)
	}
	return content.NewHolder(r)
}
