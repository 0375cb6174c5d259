package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bassista/go_folio/internal/locale"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localeServer(t *testing.T, w *locale.Widget, origins string) *httptest.Server {
	t.Helper()
	lc := NewLocaleController(w, origins)
	r := gin.New()
	r.GET("/api/locale", lc.GetLocale)
	r.GET("/ws/locale", lc.Stream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/locale"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readDisplay(t *testing.T, conn *websocket.Conn) locale.Display {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var d locale.Display
	require.NoError(t, conn.ReadJSON(&d))
	return d
}

func TestLocaleController_GetLocale(t *testing.T) {
	w := newFallbackWidget()
	defer w.Close()

	r := gin.New()
	r.GET("/api/locale", NewLocaleController(w, "*").GetLocale)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locale", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"city":"Chicago"`)
	assert.Contains(t, rec.Body.String(), `"temperature":""`)
}

func TestLocaleController_StreamSharesStateAcrossClients(t *testing.T) {
	w := newDallasWidget()
	defer w.Close()
	srv := localeServer(t, w, "*")

	first := dial(t, srv)
	second := dial(t, srv)
	assert.Equal(t, "New York", readDisplay(t, first).City)
	assert.Equal(t, "New York", readDisplay(t, second).City)

	require.NoError(t, w.Mount(context.Background()))

	a := readDisplay(t, first)
	b := readDisplay(t, second)
	assert.Equal(t, "Dallas, Texas", a.City)
	assert.Equal(t, a.City, b.City)
	assert.Equal(t, a.TimezoneAbbreviation, b.TimezoneAbbreviation)
}

func TestLocaleController_StreamClosesWithWidget(t *testing.T) {
	w := newFallbackWidget()
	srv := localeServer(t, w, "*")

	conn := dial(t, srv)
	readDisplay(t, conn)
	w.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestLocaleController_RejectsForeignOrigin(t *testing.T) {
	w := newFallbackWidget()
	defer w.Close()
	srv := localeServer(t, w, "https://allowed.example")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/locale"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://allowed.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	conn.Close()
}
