// Package view turns snapshots and session state into display-ready
// strings. Every function here is pure.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

// Missing is shown for any value the upstream did not provide.
const Missing = weather.Unknown

// Dashboard is the "now" panel plus the forecast strip.
type Dashboard struct {
	Place          string         `json:"place"`
	Temperature    string         `json:"temperature"`
	FeelsLike      string         `json:"feelsLike"`
	FeelsIcon      string         `json:"feelsIcon"`
	Humidity       string         `json:"humidity"`
	HumidityText   string         `json:"humidityText"`
	Pressure       string         `json:"pressure"`
	Visibility     string         `json:"visibility"`
	VisibilityText string         `json:"visibilityText"`
	Wind           string         `json:"wind"`
	WindText       string         `json:"windText"`
	WindIcon       string         `json:"windIcon"`
	Description    string         `json:"description"`
	Date           string         `json:"date"`
	AQI            string         `json:"aqi"`
	AQIText        string         `json:"aqiText"`
	Icon           string         `json:"icon"`
	Theme          string         `json:"theme"`
	Forecast       []ForecastCard `json:"forecast"`

	Status  session.Status `json:"status,omitempty"`
	Message string         `json:"message,omitempty"`
	Updated string         `json:"updated,omitempty"`
}

// ForecastCard is one day of the outlook.
type ForecastCard struct {
	Weekday     string `json:"weekday"`
	Icon        string `json:"icon"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Description string `json:"description"`
}

// Range renders "31° / 24°".
func (c ForecastCard) Range() string {
	return c.High + " / " + c.Low
}

// Historical is the panel shown for one past hour.
type Historical struct {
	Place        string `json:"place"`
	Temperature  string `json:"temperature"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Icon         string `json:"icon"`
	Humidity     string `json:"humidity"`
	HumidityText string `json:"humidityText"`
	Pressure     string `json:"pressure"`
	PressureText string `json:"pressureText"`
	Wind         string `json:"wind"`
	WindText     string `json:"windText"`
	WindIcon     string `json:"windIcon"`
	FeelsLike    string `json:"feelsLike"`
	FeelsText    string `json:"feelsText"`
	FeelsIcon    string `json:"feelsIcon"`
}

// Round rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func format(v *float64, layout string) string {
	if !usable(v) {
		return Missing
	}
	return fmt.Sprintf(layout, Round(*v))
}

func text(v *float64, fn func(float64) string) string {
	if !usable(v) {
		return Missing
	}
	return fn(*v)
}

func windIcon(kmh *float64) string {
	if !usable(kmh) {
		return "na"
	}
	return fmt.Sprintf("wind-beaufort-%d", weather.Beaufort(*kmh))
}

func dateString(ts, layout string) string {
	if ts == "" {
		return Missing
	}
	t, err := weather.ParseTimestamp(ts)
	if err != nil {
		return Missing
	}
	return t.Format(layout)
}

// BuildDashboard renders a snapshot and its forecast for place.
func BuildDashboard(place weather.Place, snap weather.CurrentSnapshot, days []weather.ForecastDay) Dashboard {
	code := weather.CodeOrUnknown(snap.WeatherCode)

	d := Dashboard{
		Place:          place.Name,
		Temperature:    format(snap.TemperatureC, "%d°C"),
		FeelsLike:      format(snap.ApparentTemperatureC, "Feels like %d°C"),
		FeelsIcon:      weather.FeelsIcon(finite(snap.ApparentTemperatureC)),
		Humidity:       format(snap.HumidityPct, "%d%%"),
		HumidityText:   text(snap.HumidityPct, weather.HumidityComfort),
		Pressure:       format(snap.PressureMb, "%d mb"),
		Visibility:     format(snap.VisibilityKm, "%d km"),
		VisibilityText: text(snap.VisibilityKm, weather.VisibilityText),
		Wind:           format(snap.WindKmh, "%d km/h"),
		WindText:       text(snap.WindKmh, weather.WindText),
		WindIcon:       windIcon(snap.WindKmh),
		Description:    weather.Describe(code),
		Date:           dateString(snap.Time, "Monday, January 2"),
		AQI:            "N/A",
		AQIText:        weather.AQIBand(snap.AQI),
		Icon:           weather.Icon(code, snap.IsDay),
		Theme:          weather.Theme(code, snap.IsDay),
		Forecast:       BuildForecast(days),
	}
	if d.Place == "" {
		d.Place = Missing
	}
	if snap.AQI != nil {
		d.AQI = fmt.Sprintf("%d AQI", *snap.AQI)
	}
	return d
}

// BuildForecast renders the outlook. Cards use the daytime icon.
func BuildForecast(days []weather.ForecastDay) []ForecastCard {
	cards := make([]ForecastCard, 0, len(days))
	for _, day := range days {
		code := weather.CodeOrUnknown(day.WeatherCode)
		cards = append(cards, ForecastCard{
			Weekday:     dateString(day.Date, "Monday"),
			Icon:        weather.Icon(code, true),
			High:        format(day.MaxC, "%d°"),
			Low:         format(day.MinC, "%d°"),
			Description: weather.Describe(code),
		})
	}
	return cards
}

// FromState renders the dashboard for a session state. A failed render
// has an empty snapshot, so every value shows as Missing.
func FromState(st session.State) Dashboard {
	d := BuildDashboard(st.Place, st.Snapshot, st.Forecast)
	d.Status = st.Status
	d.Message = st.Message
	if !st.UpdatedAt.IsZero() {
		d.Updated = Stamp(st.UpdatedAt)
	}
	return d
}

// BuildHistorical renders one past hour. An unnamed place shows as
// "Current Location".
func BuildHistorical(place weather.Place, h weather.HistoricalHour) Historical {
	code := weather.CodeOrUnknown(h.WeatherCode)
	name := place.Name
	if name == "" {
		name = "Current Location"
	}
	return Historical{
		Place:        name,
		Temperature:  format(h.TemperatureC, "%d°C"),
		Description:  weather.Describe(code),
		Date:         dateString(h.Time, "January 2, 2006"),
		Icon:         weather.Icon(code, h.IsDay),
		Humidity:     format(h.HumidityPct, "%d%%"),
		HumidityText: text(h.HumidityPct, weather.HumidityComfort),
		Pressure:     format(h.PressureMb, "%d mb"),
		PressureText: "Normal pressure",
		Wind:         format(h.WindKmh, "%d km/h"),
		WindText:     text(h.WindKmh, weather.WindText),
		WindIcon:     windIcon(h.WindKmh),
		FeelsLike:    format(h.ApparentTemperatureC, "%d°C"),
		FeelsText:    "Relative to wind & humidity",
		FeelsIcon:    weather.FeelsIcon(finite(h.ApparentTemperatureC)),
	}
}

func finite(v *float64) *float64 {
	if !usable(v) {
		return nil
	}
	return v
}

// Stamp formats when a state was produced, for footers.
func Stamp(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	return t.Format("15:04:05")
}
