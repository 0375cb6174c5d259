package locale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bassista/go_folio/internal/logger"
	"github.com/sony/gobreaker"
)

var (
	// ErrUpstreamStatus is returned for any non-2xx response.
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	// ErrMalformedBody is returned when the body is not the expected JSON.
	ErrMalformedBody = errors.New("malformed upstream body")
	// ErrUpstreamRejected is returned when the service answers with its own error flag.
	ErrUpstreamRejected = errors.New("upstream rejected lookup")
	// ErrCircuitOpen is returned while the breaker for a service is open.
	ErrCircuitOpen = errors.New("circuit open")
)

const userAgent = "go_folio/1.0"

const (
	breakerTripAfter = 5
	breakerOpenFor   = 30 * time.Minute
)

// breakers holds one circuit per upstream endpoint for the whole process, so
// every resolver talking to the same service shares its failure history.
var breakers sync.Map

func breakerFor(name, baseURL string) *gobreaker.CircuitBreaker {
	key := name + " " + baseURL
	if cb, ok := breakers.Load(key); ok {
		return cb.(*gobreaker.CircuitBreaker)
	}
	settings := gobreaker.Settings{
		Name:        key,
		MaxRequests: 1,
		Timeout:     breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithComponent("locale").
				WithField("breaker", name).
				Infof("circuit %s -> %s", from, to)
		},
	}
	cb, _ := breakers.LoadOrStore(key, gobreaker.NewCircuitBreaker(settings))
	return cb.(*gobreaker.CircuitBreaker)
}

// lookupClient issues one GET per call behind the shared breaker for its
// upstream. There are no retries: a failed call degrades the widget until
// the next refresh.
type lookupClient struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func newLookupClient(name, baseURL string, client *http.Client) *lookupClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &lookupClient{client: client, circuit: breakerFor(name, baseURL)}
}

func (l *lookupClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	_, err := l.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, l.circuit.Name())
	}
	return err
}
