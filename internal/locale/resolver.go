package locale

import (
	"context"
	"math"
	"strings"

	"github.com/bassista/go_folio/internal/logger"
)

// Coordinates are a validated latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Resolver runs the staged location pipeline: the fallback snapshot is
// known up front, the IP stage replaces it wholesale on success, and the
// weather stage runs only when the IP stage produced coordinates.
type Resolver struct {
	geo      GeoLocator
	weather  WeatherProvider
	fallback Snapshot
	lookupIP string
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithLookupIP makes the IP stage geolocate ip instead of the caller's
// own public address.
func WithLookupIP(ip string) ResolverOption {
	return func(r *Resolver) { r.lookupIP = strings.TrimSpace(ip) }
}

// NewResolver wires the pipeline. geo and weather may be nil, in which case
// the corresponding stage is skipped.
func NewResolver(geo GeoLocator, weather WeatherProvider, fallback Snapshot, opts ...ResolverOption) *Resolver {
	if fallback.Timezone == "" {
		fallback.Timezone = LocalLabel
	}
	if fallback.City == "" {
		fallback.City = CityFromTimezone(fallback.Timezone)
	}
	fallback.TemperatureC = nil
	r := &Resolver{geo: geo, weather: weather, fallback: fallback}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fallback returns the tier-1 snapshot.
func (r *Resolver) Fallback() Snapshot {
	return r.fallback
}

// Locate runs the IP stage. ok is false when the lookup failed, in which
// case the caller keeps whatever it already has.
func (r *Resolver) Locate(ctx context.Context) (snap Snapshot, coords *Coordinates, ok bool) {
	log := logger.WithComponent("locale")
	if r.geo == nil {
		return Snapshot{}, nil, false
	}

	pos, err := r.geo.Locate(ctx, r.lookupIP)
	if err != nil {
		log.WithError(err).Debug("IP geolocation failed, keeping fallback")
		return Snapshot{}, nil, false
	}

	snap = Snapshot{
		City:     joinNonEmpty(", ", pos.City, pos.Region),
		Timezone: pos.Timezone,
	}
	if snap.City == "" {
		snap.City = r.fallback.City
	}
	if snap.Timezone == "" || !isLoadable(snap.Timezone) {
		snap.Timezone = r.fallback.Timezone
	}
	if validCoordinate(pos.Latitude) && validCoordinate(pos.Longitude) {
		coords = &Coordinates{Latitude: *pos.Latitude, Longitude: *pos.Longitude}
	}
	log.WithField("city", snap.City).WithField("timezone", snap.Timezone).Debug("IP geolocation resolved")
	return snap, coords, true
}

// Enrich runs the weather stage for snap. ok is false when no reading could
// be obtained; snap is then returned without a temperature.
func (r *Resolver) Enrich(ctx context.Context, snap Snapshot, coords Coordinates) (Snapshot, bool) {
	snap.TemperatureC = nil
	if r.weather == nil {
		return snap, false
	}
	temp, err := r.weather.CurrentTemperature(ctx, coords.Latitude, coords.Longitude)
	if err != nil || math.IsNaN(temp) || math.IsInf(temp, 0) {
		logger.WithComponent("locale").WithError(err).Debug("weather lookup failed, no temperature shown")
		return snap, false
	}
	snap.TemperatureC = &temp
	return snap, true
}

// Resolve runs both network stages and hands every improved snapshot to
// apply. apply returns false once its owner is gone; the pipeline stops
// there and later results are discarded.
func (r *Resolver) Resolve(ctx context.Context, apply func(Snapshot) bool) {
	snap, coords, ok := r.Locate(ctx)
	if !ok || ctx.Err() != nil {
		return
	}
	if !apply(snap) || coords == nil {
		return
	}
	enriched, ok := r.Enrich(ctx, snap, *coords)
	if !ok || ctx.Err() != nil {
		return
	}
	apply(enriched)
}

// ResolveOnce runs the pipeline to completion and returns the final snapshot.
func (r *Resolver) ResolveOnce(ctx context.Context) Snapshot {
	final := r.fallback
	r.Resolve(ctx, func(s Snapshot) bool {
		final = s
		return true
	})
	return final
}

func validCoordinate(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
