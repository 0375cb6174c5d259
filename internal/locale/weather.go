package locale

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// WeatherProvider reports the current air temperature in Celsius.
type WeatherProvider interface {
	CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error)
}

// OpenMeteoClient queries the Open-Meteo forecast API.
type OpenMeteoClient struct {
	forecastURL string
	lookup      *lookupClient
}

// NewOpenMeteoClient builds a client for forecastURL, e.g.
// "https://api.open-meteo.com/v1/forecast".
func NewOpenMeteoClient(forecastURL string, client *http.Client) *OpenMeteoClient {
	forecastURL = strings.TrimRight(forecastURL, "/")
	return &OpenMeteoClient{
		forecastURL: forecastURL,
		lookup:      newLookupClient("open-meteo", forecastURL, client),
	}
}

type openMeteoResponse struct {
	Current *struct {
		Temperature *float64 `json:"temperature_2m"`
	} `json:"current"`
}

func (c *OpenMeteoClient) CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", "temperature_2m")
	q.Set("timezone", "auto")

	var body openMeteoResponse
	if err := c.lookup.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &body); err != nil {
		return 0, err
	}
	if body.Current == nil || body.Current.Temperature == nil {
		return 0, fmt.Errorf("%w: current.temperature_2m missing", ErrMalformedBody)
	}
	return *body.Current.Temperature, nil
}
