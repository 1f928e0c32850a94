package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

var errNoAddress = errors.New("nominatim returned no address")

// NominatimGeocoder implements weather.AddressGeocoder. Nominatim's usage
// policy requires an identifying User-Agent.
type NominatimGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimGeocoder(client *http.Client, userAgent, baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit: newCircuitBreaker("nominatim"),
	}
}

type nominatimPlace struct {
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	DisplayName string          `json:"display_name"`
	Address     weather.Address `json:"address"`
	Error       string          `json:"error"`
}

func (p nominatimPlace) candidate() (weather.AddressCandidate, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return weather.AddressCandidate{}, fmt.Errorf("nominatim lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return weather.AddressCandidate{}, fmt.Errorf("nominatim lon %q: %w", p.Lon, err)
	}
	return weather.AddressCandidate{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: p.DisplayName,
		Address:     p.Address,
	}, nil
}

func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]weather.AddressCandidate, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("addressdetails", "1")
	values.Set("q", query)

	var payload []nominatimPlace
	if err := getJSON(ctx, g.httpCfg, g.circuit, g.baseURL+"/search", values, &payload); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	out := make([]weather.AddressCandidate, 0, len(payload))
	for _, p := range payload {
		c, err := p.candidate()
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lon float64) (weather.AddressCandidate, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("addressdetails", "1")
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload nominatimPlace
	if err := getJSON(ctx, g.httpCfg, g.circuit, g.baseURL+"/reverse", values, &payload); err != nil {
		return weather.AddressCandidate{}, fmt.Errorf("nominatim reverse: %w", err)
	}
	if payload.Error != "" {
		return weather.AddressCandidate{}, fmt.Errorf("%w: %s", errNoAddress, payload.Error)
	}

	return weather.AddressCandidate{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: payload.DisplayName,
		Address:     payload.Address,
	}, nil
}
