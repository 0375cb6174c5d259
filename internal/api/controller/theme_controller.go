package controller

import (
	"errors"
	"net/http"

	"github.com/bassista/go_folio/internal/config"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/bassista/go_folio/internal/theme"
	"github.com/gin-gonic/gin"
)

// cookieBackend stores the theme in a per-visitor cookie, the server-side
// counterpart of browser local storage. Every key maps to the one cookie.
type cookieBackend struct {
	c      *gin.Context
	name   string
	maxAge int
}

func (b *cookieBackend) Get(string) (string, bool, error) {
	v, err := b.c.Cookie(b.name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b *cookieBackend) Set(_ string, value string) error {
	b.c.SetSameSite(http.SameSiteLaxMode)
	b.c.SetCookie(b.name, value, b.maxAge, "/", "", b.c.Request.TLS != nil, false)
	return nil
}

// ThemeController reads and toggles the visitor's theme.
type ThemeController struct {
	cfg config.ThemeConfig
}

func NewThemeController(cfg config.ThemeConfig) *ThemeController {
	return &ThemeController{cfg: cfg}
}

// StoreFor returns a theme store bound to the request's cookies.
func (tc *ThemeController) StoreFor(c *gin.Context) *theme.Store {
	name := tc.cfg.CookieName
	if name == "" {
		name = theme.StorageKey
	}
	return theme.NewStore(&cookieBackend{c: c, name: name, maxAge: int(tc.cfg.CookieMaxAge.Seconds())})
}

type themeResponse struct {
	Theme theme.Theme `json:"theme"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// GetTheme returns the current theme.
func (tc *ThemeController) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, themeResponse{Theme: tc.StoreFor(c).Read()})
}

// Toggle flips and persists the theme.
func (tc *ThemeController) Toggle(c *gin.Context) {
	next, err := tc.StoreFor(c).Toggle()
	if err != nil {
		logger.WithComponent("theme").WithError(err).Warn("theme not persisted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist theme"})
		return
	}
	c.JSON(http.StatusOK, themeResponse{Theme: next})
}

// SetTheme stores an explicit theme.
func (tc *ThemeController) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be \"light\" or \"dark\""})
		return
	}
	store := tc.StoreFor(c)
	if err := store.Write(theme.Parse(req.Theme)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist theme"})
		return
	}
	c.JSON(http.StatusOK, themeResponse{Theme: store.Read()})
}
