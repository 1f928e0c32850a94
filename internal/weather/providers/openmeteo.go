package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
	"github.com/sony/gobreaker"
)

const (
	currentFields = "temperature_2m,apparent_temperature,relative_humidity_2m,pressure_msl,wind_speed_10m,weather_code,is_day"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"
	archiveFields = "temperature_2m,apparent_temperature,weather_code,relative_humidity_2m,pressure_msl,wind_speed_10m,visibility"
	forecastDays  = 7
)

// OpenMeteoEndpoints holds the base URLs of the Open-Meteo services.
type OpenMeteoEndpoints struct {
	Forecast   string
	AirQuality string
	Archive    string
}

// DefaultOpenMeteoEndpoints are the public Open-Meteo services.
var DefaultOpenMeteoEndpoints = OpenMeteoEndpoints{
	Forecast:   "https://api.open-meteo.com/v1/forecast",
	AirQuality: "https://air-quality-api.open-meteo.com/v1/air-quality",
	Archive:    "https://archive-api.open-meteo.com/v1/archive",
}

// OpenMeteoProvider implements weather.ForecastSource, weather.AirQualitySource
// and weather.ArchiveSource. Each service has its own circuit breaker.
type OpenMeteoProvider struct {
	endpoints OpenMeteoEndpoints
	httpCfg   HTTPClientConfig

	forecastCB *gobreaker.CircuitBreaker
	airCB      *gobreaker.CircuitBreaker
	archiveCB  *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, userAgent string, endpoints OpenMeteoEndpoints) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		endpoints:  endpoints,
		httpCfg:    HTTPClientConfig{Client: client, UserAgent: userAgent},
		forecastCB: newCircuitBreaker("openmeteo-forecast"),
		airCB:      newCircuitBreaker("openmeteo-air-quality"),
		archiveCB:  newCircuitBreaker("openmeteo-archive"),
	}
}

func coordinates(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("timezone", "auto")
	return values
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, lat, lon float64) (weather.ForecastResponse, error) {
	values := coordinates(lat, lon)
	values.Set("current", currentFields)
	values.Set("hourly", "visibility")
	values.Set("daily", dailyFields)
	values.Set("windspeed_unit", "kmh")
	values.Set("forecast_days", strconv.Itoa(forecastDays))

	var payload weather.ForecastResponse
	if err := getJSON(ctx, p.httpCfg, p.forecastCB, p.endpoints.Forecast, values, &payload); err != nil {
		return weather.ForecastResponse{}, fmt.Errorf("openmeteo forecast: %w", err)
	}
	return payload, nil
}

func (p *OpenMeteoProvider) AirQuality(ctx context.Context, lat, lon float64) (weather.AirQualityResponse, error) {
	values := coordinates(lat, lon)
	values.Set("hourly", "us_aqi")

	var payload weather.AirQualityResponse
	if err := getJSON(ctx, p.httpCfg, p.airCB, p.endpoints.AirQuality, values, &payload); err != nil {
		return weather.AirQualityResponse{}, fmt.Errorf("openmeteo air quality: %w", err)
	}
	return payload, nil
}

func (p *OpenMeteoProvider) Archive(ctx context.Context, lat, lon float64, day time.Time) (weather.ArchiveResponse, error) {
	date := day.Format("2006-01-02")
	values := coordinates(lat, lon)
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("hourly", archiveFields)

	var payload weather.ArchiveResponse
	if err := getJSON(ctx, p.httpCfg, p.archiveCB, p.endpoints.Archive, values, &payload); err != nil {
		return weather.ArchiveResponse{}, fmt.Errorf("openmeteo archive: %w", err)
	}
	return payload, nil
}

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo
// geocoding API.
type OpenMeteoGeocoder struct {
	baseURL  string
	language string
	count    int
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

const DefaultOpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

func NewOpenMeteoGeocoder(client *http.Client, userAgent, baseURL, language string, count int) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL:  baseURL,
		language: language,
		count:    count,
		httpCfg:  HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit:  newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) ([]weather.GeoCandidate, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", strconv.Itoa(g.count))
	values.Set("language", g.language)
	values.Set("format", "json")

	var payload struct {
		Results []weather.GeoCandidate `json:"results"`
	}
	if err := getJSON(ctx, g.httpCfg, g.circuit, g.baseURL, values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo geocoding: %w", err)
	}
	return payload.Results, nil
}
