package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(allowed string) *gin.Engine {
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestCORSMiddleware_AllowAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	corsRouter("*").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected ACAO header '*', got '%s'", origin)
	}
	if vary := w.Header().Get("Vary"); vary == "Origin" {
		t.Error("should not set Vary: Origin when using wildcard")
	}
	if creds := w.Header().Get("Access-Control-Allow-Credentials"); creds == "true" {
		t.Error("should not set Allow-Credentials with wildcard origin")
	}
}

func TestCORSMiddleware_SpecificOrigin_Allowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://allowed.com")
	w := httptest.NewRecorder()
	corsRouter("http://allowed.com,http://also-allowed.com").ServeHTTP(w, req)

	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://allowed.com" {
		t.Errorf("expected ACAO header 'http://allowed.com', got '%s'", origin)
	}
	if vary := w.Header().Get("Vary"); vary != "Origin" {
		t.Errorf("expected Vary: Origin, got '%s'", vary)
	}
	if creds := w.Header().Get("Access-Control-Allow-Credentials"); creds != "true" {
		t.Errorf("expected Allow-Credentials: true, got '%s'", creds)
	}
}

func TestCORSMiddleware_SpecificOrigin_NotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://not-allowed.com")
	w := httptest.NewRecorder()
	corsRouter("http://allowed.com").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("expected no ACAO header, got '%s'", origin)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://allowed.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header, X-Another")
	w := httptest.NewRecorder()
	corsRouter("http://allowed.com").ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	if h := w.Header().Get("Access-Control-Allow-Headers"); h != "X-Custom-Header, X-Another" {
		t.Errorf("expected echoed headers, got '%s'", h)
	}
}

func TestCORSMiddleware_NoOriginHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	corsRouter("http://allowed.com").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("expected no ACAO header for no-origin request, got '%s'", origin)
	}
}

func TestCORSMiddleware_EmptyAllowedOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	corsRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("expected no ACAO header, got '%s'", origin)
	}
}

func TestCORSMiddleware_WhitespaceInOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://b.com")
	w := httptest.NewRecorder()
	corsRouter("  http://a.com  ,  http://b.com  ").ServeHTTP(w, req)

	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://b.com" {
		t.Errorf("expected origin to be allowed after trimming whitespace, got '%s'", origin)
	}
}
