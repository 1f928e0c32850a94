// Package places turns free-text queries and raw coordinates into
// canonical weather.Place values.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

// Resolver queries a primary geocoder first and an address geocoder as
// fallback.
type Resolver struct {
	primary          weather.Geocoder
	secondary        weather.AddressGeocoder
	preferredCountry string
	log              *slog.Logger
}

func NewResolver(primary weather.Geocoder, secondary weather.AddressGeocoder, preferredCountry string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		primary:          primary,
		secondary:        secondary,
		preferredCountry: strings.ToUpper(preferredCountry),
		log:              logger.With("component", "places"),
	}
}

// ResolveByName returns the best place for query. Among primary results
// the first one in the preferred country wins, else the first result.
// With no primary results the address geocoder is asked. weather.ErrNotFound
// is returned when neither yields anything.
func (r *Resolver) ResolveByName(ctx context.Context, query string) (weather.Place, error) {
	results, err := r.primary.Search(ctx, query)
	if err != nil {
		return weather.Place{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(results) > 0 {
		best := results[0]
		for _, c := range results {
			if r.preferredCountry != "" && strings.EqualFold(c.CountryCode, r.preferredCountry) {
				best = c
				break
			}
		}
		return weather.NewPlace(best.Name, best.Latitude, best.Longitude, strings.ToUpper(best.CountryCode))
	}

	if r.secondary == nil {
		return weather.Place{}, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}
	r.log.Debug("primary geocoder empty, trying address search", "query", query)

	candidates, err := r.secondary.Search(ctx, query)
	if err != nil {
		return weather.Place{}, fmt.Errorf("address search %q: %w", query, err)
	}
	if len(candidates) == 0 {
		return weather.Place{}, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}

	c := candidates[0]
	cc := strings.ToUpper(c.Address.CountryCode)
	if cc == "" {
		cc = "XX"
	}
	return weather.NewPlace(DisplayName(c), c.Latitude, c.Longitude, cc)
}

// ResolveByCoordinates names the given coordinates. It never fails: any
// lookup problem yields a name built from the coordinates themselves.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lat, lon float64) weather.Place {
	fallback := weather.Place{Name: weather.CoordinateName(lat, lon), Latitude: lat, Longitude: lon}
	if r.secondary == nil {
		return fallback
	}

	c, err := r.secondary.Reverse(ctx, lat, lon)
	if err != nil {
		r.log.Info("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return fallback
	}
	name := DisplayName(c)
	if name == "" {
		return fallback
	}
	return weather.Place{
		Name:        name,
		Latitude:    lat,
		Longitude:   lon,
		CountryCode: strings.ToUpper(c.Address.CountryCode),
	}
}

// DisplayName picks city, town, village, hamlet, county, state, country in
// that order. A missing name, or one starting with a digit (a street-number
// artifact), falls back to the full display name.
func DisplayName(c weather.AddressCandidate) string {
	a := c.Address
	name := ""
	for _, v := range []string{a.City, a.Town, a.Village, a.Hamlet, a.County, a.State, a.Country} {
		if v != "" {
			name = v
			break
		}
	}
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return c.DisplayName
	}
	return name
}
