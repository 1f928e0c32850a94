package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultIPGeolocationURL is ip-api.com, free for non-commercial use.
const DefaultIPGeolocationURL = "http://ip-api.com/json/"

var errNoPosition = errors.New("device position unavailable")

// IPLocator approximates the device position from its public IP. A fix
// younger than maxAge is reused instead of asking again.
type IPLocator struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time

	mu   sync.Mutex
	last *weather.Position
}

func NewIPLocator(client *http.Client, userAgent, endpoint string) *IPLocator {
	return &IPLocator{
		url:     endpoint,
		httpCfg: HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit: newCircuitBreaker("ip-geolocation"),
		now:     time.Now,
	}
}

func (l *IPLocator) Locate(ctx context.Context, maxAge time.Duration) (weather.Position, error) {
	l.mu.Lock()
	if l.last != nil && l.now().Sub(l.last.Timestamp) <= maxAge {
		pos := *l.last
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	var result struct {
		Status  string  `json:"status"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Message string  `json:"message"`
	}
	if err := getJSON(ctx, l.httpCfg, l.circuit, l.url, url.Values{}, &result); err != nil {
		return weather.Position{}, fmt.Errorf("ip geolocation: %w", err)
	}
	if result.Status != "success" {
		return weather.Position{}, fmt.Errorf("%w: %s", errNoPosition, result.Message)
	}

	pos := weather.Position{Latitude: result.Lat, Longitude: result.Lon, Timestamp: l.now()}
	l.mu.Lock()
	l.last = &pos
	l.mu.Unlock()
	return pos, nil
}

// StaticLocator always reports the same position, for hosts where the
// position is configured rather than detected.
type StaticLocator struct {
	Latitude  float64
	Longitude float64
}

func (s StaticLocator) Locate(ctx context.Context, maxAge time.Duration) (weather.Position, error) {
	if err := ctx.Err(); err != nil {
		return weather.Position{}, err
	}
	return weather.Position{Latitude: s.Latitude, Longitude: s.Longitude, Timestamp: time.Now()}, nil
}

// NoLocator reports that no device position is available.
type NoLocator struct{}

func (NoLocator) Locate(ctx context.Context, maxAge time.Duration) (weather.Position, error) {
	return weather.Position{}, errNoPosition
}
