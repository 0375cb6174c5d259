package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bassista/go_folio/internal/config"
	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

func bufferedEntry() (*logrus.Entry, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l.WithField("component", "http"), &buf
}

func TestAccessLog(t *testing.T) {
	entry, buf := bufferedEntry()
	r := gin.New()
	r.Use(AccessLog(entry))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	out := buf.String()
	if !strings.Contains(out, "path=/ok") || !strings.Contains(out, "status=200") {
		t.Errorf("missing debug line for /ok: %s", out)
	}
	if !strings.Contains(out, "level=warning") || !strings.Contains(out, "path=/bad") {
		t.Errorf("missing warning line for /bad: %s", out)
	}
}

func TestHoneybadgerMiddleware_DisabledWithoutKey(t *testing.T) {
	entry, buf := bufferedEntry()

	r := gin.New()
	r.Use(HoneybadgerMiddleware(config.ReportingConfig{}, entry))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "Error reporting is off") {
		t.Errorf("expected disabled notice, got: %s", buf.String())
	}
}

type notice struct {
	message string
	tags    honeybadger.Tags
	context honeybadger.Context
}

func recordNotices(t *testing.T) *[]notice {
	t.Helper()
	var got []notice
	orig := notify
	notify = func(err interface{}, extra ...interface{}) (string, error) {
		n := notice{message: fmt.Sprint(err)}
		for _, e := range extra {
			switch v := e.(type) {
			case honeybadger.Tags:
				n.tags = v
			case honeybadger.Context:
				n.context = v
			}
		}
		got = append(got, n)
		return "id", nil
	}
	t.Cleanup(func() { notify = orig })
	return &got
}

func TestReportFailures_GroupsByRoute(t *testing.T) {
	got := recordNotices(t)
	entry, _ := bufferedEntry()

	r := gin.New()
	r.Use(reportFailures(entry))
	r.GET("/api/resume/:part", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	r.GET("/api/theme", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/resume/person", "/api/theme", "/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(*got) != 2 {
		t.Fatalf("expected 2 notices, got %d: %+v", len(*got), *got)
	}
	first, second := (*got)[0], (*got)[1]
	if first.message != "HTTP 503 on GET /api/resume/:part" {
		t.Errorf("unexpected message: %s", first.message)
	}
	if first.tags[0] != "5XX" || first.context["route"] != "GET /api/resume/:part" {
		t.Errorf("unexpected 5xx notice: %+v", first)
	}
	if second.tags[0] != "4XX" {
		t.Errorf("unexpected 4xx tags: %v", second.tags)
	}
}

func TestReportFailures_PanicReportedAndReraised(t *testing.T) {
	got := recordNotices(t)
	entry, buf := bufferedEntry()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reportFailures(entry))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected recovery to answer 500, got %d", w.Code)
	}
	if len(*got) != 1 || (*got)[0].tags[0] != "panic" {
		t.Fatalf("expected one panic notice, got %+v", *got)
	}
	if !strings.Contains((*got)[0].message, "kaboom") {
		t.Errorf("panic value missing from notice: %s", (*got)[0].message)
	}
	if !strings.Contains(buf.String(), "panic reported") {
		t.Errorf("expected error log, got: %s", buf.String())
	}
}
