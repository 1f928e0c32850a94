package weather

import (
	"context"
	"time"
)

// GeoCandidate is one result of a by-name geocoder search.
type GeoCandidate struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
}

// Address holds the structured part of an address-geocoder result.
type Address struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Hamlet      string `json:"hamlet"`
	County      string `json:"county"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// AddressCandidate is one result of an address search or a reverse lookup.
type AddressCandidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	Address     Address
}

// Geocoder resolves free text to candidates, best first.
type Geocoder interface {
	Search(ctx context.Context, name string) ([]GeoCandidate, error)
}

// AddressGeocoder resolves free text or coordinates through structured addresses.
type AddressGeocoder interface {
	Search(ctx context.Context, query string) ([]AddressCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (AddressCandidate, error)
}

// CurrentConditions is the "current" section of a forecast response.
type CurrentConditions struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	RelativeHumidity    *float64 `json:"relative_humidity_2m"`
	PressureMSL         *float64 `json:"pressure_msl"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WeatherCode         *int     `json:"weather_code"`
	IsDay               *int     `json:"is_day"`
}

// HourlyVisibility is the hourly visibility series, in meters.
type HourlyVisibility struct {
	Time       []string   `json:"time"`
	Visibility []*float64 `json:"visibility"`
}

// DailySeries is the parallel, date-indexed daily outlook.
type DailySeries struct {
	Time           []string   `json:"time"`
	WeatherCode    []*int     `json:"weather_code"`
	TemperatureMax []*float64 `json:"temperature_2m_max"`
	TemperatureMin []*float64 `json:"temperature_2m_min"`
}

// ForecastResponse is the weather service payload. Any section may be absent.
type ForecastResponse struct {
	Current *CurrentConditions `json:"current"`
	Hourly  *HourlyVisibility  `json:"hourly"`
	Daily   *DailySeries       `json:"daily"`
}

// AirQualityHourly is the hourly US AQI series.
type AirQualityHourly struct {
	Time  []string   `json:"time"`
	USAQI []*float64 `json:"us_aqi"`
}

// AirQualityResponse is the air-quality service payload.
type AirQualityResponse struct {
	Hourly *AirQualityHourly `json:"hourly"`
}

// ArchiveHourly is the hourly series of a single archive day.
type ArchiveHourly struct {
	Time                []string   `json:"time"`
	Temperature         []*float64 `json:"temperature_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	WeatherCode         []*int     `json:"weather_code"`
	RelativeHumidity    []*float64 `json:"relative_humidity_2m"`
	PressureMSL         []*float64 `json:"pressure_msl"`
	WindSpeed           []*float64 `json:"wind_speed_10m"`
	Visibility          []*float64 `json:"visibility"`
}

// ArchiveResponse is the historical archive payload.
type ArchiveResponse struct {
	Hourly *ArchiveHourly `json:"hourly"`
}

// ForecastSource fetches current, hourly and daily conditions.
type ForecastSource interface {
	Forecast(ctx context.Context, lat, lon float64) (ForecastResponse, error)
}

// AirQualitySource fetches the hourly US AQI series.
type AirQualitySource interface {
	AirQuality(ctx context.Context, lat, lon float64) (AirQualityResponse, error)
}

// ArchiveSource fetches one day of hourly history.
type ArchiveSource interface {
	Archive(ctx context.Context, lat, lon float64, day time.Time) (ArchiveResponse, error)
}

// Position is a device fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// Locator reports the device position. A fix older than maxAge must not
// be returned.
type Locator interface {
	Locate(ctx context.Context, maxAge time.Duration) (Position, error)
}
