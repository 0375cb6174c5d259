package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ptr(f float64) *float64 { return &f }

type mockGeo struct {
	mock.Mock
}

func (m *mockGeo) Locate(ctx context.Context, ip string) (Position, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(Position), args.Error(1)
}

type mockWeather struct {
	mock.Mock
}

func (m *mockWeather) CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(float64), args.Error(1)
}

// blockingGeo answers only after ctx is cancelled.
type blockingGeo struct {
	pos     Position
	started chan struct{}
}

func (b *blockingGeo) Locate(ctx context.Context, ip string) (Position, error) {
	close(b.started)
	<-ctx.Done()
	return b.pos, nil
}

// resetBreakers forgets every shared circuit once the test ends.
func resetBreakers(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		breakers.Range(func(key, _ interface{}) bool {
			breakers.Delete(key)
			return true
		})
	})
}
