// Package render prints view models as colored terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/view"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

var (
	labelColor   = color.New(color.FgCyan)
	valueColor   = color.New(color.FgWhite, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
	sectionColor = color.New(color.FgBlue, color.Bold)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

var themeColors = map[string]*color.Color{
	"theme-clear":   color.New(color.FgHiYellow, color.Bold),
	"theme-cloudy":  color.New(color.FgHiWhite, color.Bold),
	"theme-fog":     color.New(color.FgWhite, color.Bold),
	"theme-rain":    color.New(color.FgHiBlue, color.Bold),
	"theme-snow":    color.New(color.FgHiCyan, color.Bold),
	"theme-thunder": color.New(color.FgMagenta, color.Bold),
	"theme-night":   color.New(color.FgBlue, color.Bold),
}

func headline(theme string) *color.Color {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return valueColor
}

func stat(w io.Writer, label, value, note string) {
	labelColor.Fprintf(w, "  %-12s", label)
	valueColor.Fprintf(w, "%-10s", value)
	if note != "" && note != view.Missing {
		mutedColor.Fprintf(w, " %s", note)
	}
	fmt.Fprintln(w)
}

// Status prints a one-line banner for non-ready states.
func Status(w io.Writer, st session.Status, msg string) {
	switch st {
	case session.StatusReady, "":
		return
	case session.StatusTimedOut:
		warningColor.Fprintln(w, msg)
	default:
		errorColor.Fprintln(w, msg)
	}
}

// Dashboard prints the now panel and the forecast strip.
func Dashboard(w io.Writer, d view.Dashboard) {
	Status(w, d.Status, d.Message)

	h := headline(d.Theme)
	h.Fprintf(w, "%s  %s\n", d.Place, d.Temperature)
	mutedColor.Fprintf(w, "%s · %s · %s\n", d.Description, d.Date, d.FeelsLike)
	fmt.Fprintln(w)

	stat(w, "Humidity", d.Humidity, d.HumidityText)
	stat(w, "Pressure", d.Pressure, "")
	stat(w, "Visibility", d.Visibility, d.VisibilityText)
	stat(w, "Wind", d.Wind, d.WindText)
	stat(w, "Air quality", d.AQI, d.AQIText)

	if len(d.Forecast) > 0 {
		fmt.Fprintln(w)
		sectionColor.Fprintln(w, "Forecast")
		for _, c := range d.Forecast {
			labelColor.Fprintf(w, "  %-10s", c.Weekday)
			valueColor.Fprintf(w, "%-12s", c.Range())
			mutedColor.Fprintln(w, c.Description)
		}
	}
	if d.Updated != "" {
		fmt.Fprintln(w)
		mutedColor.Fprintf(w, "Updated %s\n", d.Updated)
	}
}

// Historical prints one past hour.
func Historical(w io.Writer, h view.Historical) {
	sectionColor.Fprintf(w, "%s, %s\n", h.Place, h.Date)
	valueColor.Fprintf(w, "%s  ", h.Temperature)
	mutedColor.Fprintln(w, h.Description)
	fmt.Fprintln(w)

	stat(w, "Humidity", h.Humidity, h.HumidityText)
	stat(w, "Pressure", h.Pressure, h.PressureText)
	stat(w, "Wind", h.Wind, h.WindText)
	stat(w, "Feels like", h.FeelsLike, h.FeelsText)
}

// Favorites prints saved places in order.
func Favorites(w io.Writer, favs []weather.Place) {
	if len(favs) == 0 {
		mutedColor.Fprintln(w, "No favorites saved")
		return
	}
	for i, f := range favs {
		labelColor.Fprintf(w, "%2d. ", i+1)
		valueColor.Fprint(w, f.Name)
		mutedColor.Fprintf(w, "  (%s)\n", weather.CoordinateName(f.Latitude, f.Longitude))
	}
}

// Message prints a plain informational line, or an error when isErr.
func Message(w io.Writer, msg string, isErr bool) {
	msg = strings.TrimSpace(msg)
	if isErr {
		errorColor.Fprintln(w, msg)
		return
	}
	valueColor.Fprintln(w, msg)
}
