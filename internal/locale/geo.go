package locale

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Position is what an IP geolocation lookup yields. Coordinates are nil
// when the service did not return them as numbers.
type Position struct {
	City      string
	Region    string
	Timezone  string
	Latitude  *float64
	Longitude *float64
}

// GeoLocator looks up the approximate position of an IP address. An empty
// ip means the caller's own public address.
type GeoLocator interface {
	Locate(ctx context.Context, ip string) (Position, error)
}

// IPAPIClient queries an ipapi.co compatible endpoint.
type IPAPIClient struct {
	baseURL string
	lookup  *lookupClient
}

// NewIPAPIClient builds a client for baseURL, e.g. "https://ipapi.co".
func NewIPAPIClient(baseURL string, client *http.Client) *IPAPIClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &IPAPIClient{
		baseURL: baseURL,
		lookup:  newLookupClient("ipapi", baseURL, client),
	}
}

func (c *IPAPIClient) Locate(ctx context.Context, ip string) (Position, error) {
	endpoint := c.baseURL + "/json/"
	if ip = strings.TrimSpace(ip); ip != "" {
		endpoint = c.baseURL + "/" + url.PathEscape(ip) + "/json/"
	}

	var body map[string]interface{}
	if err := c.lookup.getJSON(ctx, endpoint, &body); err != nil {
		return Position{}, err
	}
	if body == nil {
		return Position{}, fmt.Errorf("%w: empty document", ErrMalformedBody)
	}
	if flagged, _ := body["error"].(bool); flagged {
		reason, _ := body["reason"].(string)
		return Position{}, fmt.Errorf("%w: %s", ErrUpstreamRejected, reason)
	}

	return Position{
		City:      stringField(body, "city"),
		Region:    stringField(body, "region"),
		Timezone:  stringField(body, "timezone"),
		Latitude:  numberField(body, "latitude"),
		Longitude: numberField(body, "longitude"),
	}, nil
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return strings.TrimSpace(s)
}

func numberField(body map[string]interface{}, key string) *float64 {
	f, ok := body[key].(float64)
	if !ok {
		return nil
	}
	return &f
}
