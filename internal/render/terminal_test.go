package render

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/view"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	Dashboard(&buf, view.Dashboard{
		Place:        "Mumbai",
		Temperature:  "32°C",
		Description:  "Partly cloudy",
		Date:         "Wednesday, May 1",
		FeelsLike:    "Feels like 36°C",
		Humidity:     "74%",
		HumidityText: "Humid",
		Pressure:     "1008 mb",
		AQI:          "87 AQI",
		AQIText:      "Moderate",
		Theme:        "theme-cloudy",
		Forecast: []view.ForecastCard{
			{Weekday: "Thursday", High: "34°", Low: "26°", Description: "Light rain"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Mumbai  32°C")
	assert.Contains(t, out, "Partly cloudy · Wednesday, May 1 · Feels like 36°C")
	assert.Contains(t, out, "Humid")
	assert.Contains(t, out, "87 AQI")
	assert.Contains(t, out, "Forecast")
	assert.Contains(t, out, "34° / 26°")
	assert.NotContains(t, out, "\x1b[")
}

func TestDashboardStatusBanner(t *testing.T) {
	var buf bytes.Buffer
	Dashboard(&buf, view.Dashboard{Place: "Mumbai", Status: session.StatusTimedOut, Message: "Search timed out, showing Mumbai..."})
	assert.Contains(t, buf.String(), "Search timed out, showing Mumbai...\n")
	assert.NotContains(t, buf.String(), "Forecast")
	assert.NotContains(t, buf.String(), "Updated")

	buf.Reset()
	Dashboard(&buf, view.Dashboard{Place: "Mumbai", Updated: "15:00:00"})
	assert.Contains(t, buf.String(), "Updated 15:00:00\n")

	buf.Reset()
	Status(&buf, session.StatusReady, "ignored")
	assert.Empty(t, buf.String())
}

func TestHistorical(t *testing.T) {
	var buf bytes.Buffer
	Historical(&buf, view.Historical{
		Place: "Mumbai", Date: "March 10, 2024", Temperature: "30°C", Description: "Clear",
		Pressure: "1013 mb", PressureText: "Normal pressure",
	})
	assert.Contains(t, buf.String(), "Mumbai, March 10, 2024")
	assert.Contains(t, buf.String(), "Normal pressure")
}

func TestFavorites(t *testing.T) {
	var buf bytes.Buffer
	Favorites(&buf, nil)
	assert.Equal(t, "No favorites saved\n", buf.String())

	buf.Reset()
	Favorites(&buf, []weather.Place{{Name: "Pune", Latitude: 18.52, Longitude: 73.85}})
	assert.Equal(t, " 1. Pune  (18.52, 73.85)\n", buf.String())
}
