package weather

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Place is a resolved location a snapshot can be built for.
// Latitude and Longitude are always finite.
type Place struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	CountryCode string  `json:"countryCode,omitempty"`
}

// NewPlace validates the coordinates and returns a Place.
func NewPlace(name string, lat, lon float64, countryCode string) (Place, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Place{}, fmt.Errorf("%w: non-finite coordinates", ErrInvalidPlace)
	}
	p := Place{
		Name:        name,
		Latitude:    lat,
		Longitude:   lon,
		CountryCode: countryCode,
	}
	if err := validate.Struct(p); err != nil {
		return Place{}, fmt.Errorf("%w: %v", ErrInvalidPlace, err)
	}
	return p, nil
}

// CoordinateName formats coordinates the way they are shown when no
// better name is known, e.g. "19.07, 72.88".
func CoordinateName(lat, lon float64) string {
	return fmt.Sprintf("%.2f, %.2f", lat, lon)
}

// CurrentSnapshot is the normalized "now" view for a place. A nil numeric
// field means the upstream did not provide it.
type CurrentSnapshot struct {
	Time                 string   `json:"time"`
	TemperatureC         *float64 `json:"temperatureC"`
	ApparentTemperatureC *float64 `json:"apparentTemperatureC"`
	HumidityPct          *float64 `json:"humidityPct"`
	PressureMb           *float64 `json:"pressureMb"`
	WindKmh              *float64 `json:"windKmh"`
	VisibilityKm         *float64 `json:"visibilityKm"`
	WeatherCode          *int     `json:"weatherCode"`
	IsDay                bool     `json:"isDay"`
	AQI                  *int     `json:"aqi"`
}

// ForecastDay is one entry of the multi-day outlook.
type ForecastDay struct {
	Date        string   `json:"date"`
	WeatherCode *int     `json:"weatherCode"`
	MaxC        *float64 `json:"maxC"`
	MinC        *float64 `json:"minC"`
}

// HistoricalHour is one hour picked out of a single archive day.
type HistoricalHour struct {
	Time                 string   `json:"time"`
	TemperatureC         *float64 `json:"temperatureC"`
	ApparentTemperatureC *float64 `json:"apparentTemperatureC"`
	HumidityPct          *float64 `json:"humidityPct"`
	PressureMb           *float64 `json:"pressureMb"`
	WindKmh              *float64 `json:"windKmh"`
	VisibilityKm         *float64 `json:"visibilityKm"`
	WeatherCode          *int     `json:"weatherCode"`
	IsDay                bool     `json:"isDay"`
	Index                int      `json:"index"`
}

// MaxForecastDays caps the outlook length. Today is never included.
const MaxForecastDays = 5

func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
