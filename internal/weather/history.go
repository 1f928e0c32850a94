package weather

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultHistoricalIndex is used when no hour is requested (noon of a
// 24-entry local day).
const DefaultHistoricalIndex = 12

var errNoArchive = errors.New("archive source not configured")

// ParseHour reads the hour out of "HH" or "HH:MM".
func ParseHour(s string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return h, nil
}

// IsDaytimeHour reports whether a local hour counts as day, 06..18 inclusive.
func IsDaytimeHour(h int) bool {
	return h >= 6 && h <= 18
}

// FetchDay loads one archive day for the place and picks one hour: the
// exact requested hour, else the nearest one, else DefaultHistoricalIndex
// when hour is nil. An empty day, or a day too short for the default
// index, yields ErrNoData.
func (s *Service) FetchDay(ctx context.Context, place Place, day time.Time, hour *int) (HistoricalHour, error) {
	if s.archive == nil {
		return HistoricalHour{}, errNoArchive
	}

	resp, err := s.archive.Archive(ctx, place.Latitude, place.Longitude, day)
	if err != nil {
		return HistoricalHour{}, fmt.Errorf("fetch archive: %w", err)
	}
	h := resp.Hourly
	if h == nil || len(h.Time) == 0 {
		return HistoricalHour{}, ErrNoData
	}

	idx := DefaultHistoricalIndex
	if hour != nil {
		idx = selectHour(localHours(h.Time), *hour)
	}
	if idx >= len(h.Time) {
		s.log.Info("archive day shorter than default index", "place", place.Name, "entries", len(h.Time))
		return HistoricalHour{}, ErrNoData
	}

	out := HistoricalHour{
		Time:                 h.Time[idx],
		TemperatureC:         at(h.Temperature, idx),
		ApparentTemperatureC: at(h.ApparentTemperature, idx),
		HumidityPct:          at(h.RelativeHumidity, idx),
		PressureMb:           at(h.PressureMSL, idx),
		WindKmh:              at(h.WindSpeed, idx),
		WeatherCode:          at(h.WeatherCode, idx),
		Index:                idx,
	}
	if m := at(h.Visibility, idx); m != nil {
		km := *m / 1000
		out.VisibilityKm = &km
	}
	if t, err := ParseTimestamp(out.Time); err == nil {
		out.IsDay = IsDaytimeHour(t.Hour())
	}
	return out, nil
}

// localHours returns the hour of day of each entry, -1 when unparseable.
func localHours(times []string) []int {
	hours := make([]int, len(times))
	for i, ts := range times {
		t, err := ParseTimestamp(ts)
		if err != nil {
			hours[i] = -1
			continue
		}
		hours[i] = t.Hour()
	}
	return hours
}

// selectHour returns the first exact match, else the first index with the
// smallest absolute hour difference.
func selectHour(hours []int, target int) int {
	for i, h := range hours {
		if h == target {
			return i
		}
	}
	best, bestDiff := 0, -1
	for i, h := range hours {
		if h < 0 {
			continue
		}
		d := h - target
		if d < 0 {
			d = -d
		}
		if bestDiff < 0 || d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
