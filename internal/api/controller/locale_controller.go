package controller

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bassista/go_folio/internal/locale"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// LocaleSource is the shared location widget as seen by HTTP surfaces.
type LocaleSource interface {
	Display() locale.Display
	Subscribe() (uuid.UUID, <-chan locale.Display, func())
}

// LocaleController exposes the widget state as JSON and as a WebSocket feed.
type LocaleController struct {
	source   LocaleSource
	upgrader websocket.Upgrader
}

// NewLocaleController builds the controller. allowedOrigins follows the CORS
// setting: "*" accepts any origin, otherwise a comma-separated list.
func NewLocaleController(source LocaleSource, allowedOrigins string) *LocaleController {
	return &LocaleController{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// GetLocale returns the current pill.
func (lc *LocaleController) GetLocale(c *gin.Context) {
	c.JSON(http.StatusOK, lc.source.Display())
}

// Stream upgrades to a WebSocket and pushes the current pill followed by
// every change until the client leaves or the widget closes.
func (lc *LocaleController) Stream(c *gin.Context) {
	conn, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithComponent("ws").WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	id, updates, cancel := lc.source.Subscribe()
	defer cancel()
	log := logger.WithComponent("ws").WithField("subscriber", id.String())
	log.Debug("locale subscriber connected")

	// the read loop only exists to observe pongs and the close frame
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("websocket read")
				}
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-gone:
			log.Debug("locale subscriber left")
			return
		case d, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := conn.WriteJSON(d); err != nil {
				log.WithError(err).Debug("websocket write")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func originChecker(allowedOrigins string) func(*http.Request) bool {
	if strings.TrimSpace(allowedOrigins) == "*" {
		return func(*http.Request) bool { return true }
	}
	allowed := map[string]struct{}{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}
