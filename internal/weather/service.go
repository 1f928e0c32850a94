package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// Service builds snapshots and historical hours for resolved places.
type Service struct {
	forecast ForecastSource
	air      AirQualitySource
	archive  ArchiveSource
	log      *slog.Logger
}

// NewService creates a new Service. air and archive may be nil.
func NewService(forecast ForecastSource, air AirQualitySource, archive ArchiveSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		forecast: forecast,
		air:      air,
		archive:  archive,
		log:      logger.With("component", "weather"),
	}
}

// BuildSnapshot fetches current conditions and air quality concurrently for
// the place, aligns the hourly series to the observation time and returns
// the snapshot plus up to MaxForecastDays days, today excluded.
//
// Only a failed weather fetch, or one without a current section, is an
// error. Air quality and visibility degrade to unknown.
func (s *Service) BuildSnapshot(ctx context.Context, place Place) (CurrentSnapshot, []ForecastDay, error) {
	var (
		wg      sync.WaitGroup
		fc      ForecastResponse
		fcErr   error
		aq      AirQualityResponse
		aqErr   error
		haveAir = s.air != nil
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		fc, fcErr = s.forecast.Forecast(ctx, place.Latitude, place.Longitude)
	}()

	if haveAir {
		wg.Add(1)
		go func() {
			defer wg.Done()
			aq, aqErr = s.air.AirQuality(ctx, place.Latitude, place.Longitude)
		}()
	}

	wg.Wait()

	if fcErr != nil {
		s.log.Warn("forecast fetch failed", "place", place.Name, "error", fcErr)
		return CurrentSnapshot{}, nil, fmt.Errorf("%w: %v", ErrUpstream, fcErr)
	}
	if fc.Current == nil {
		s.log.Warn("forecast response has no current section", "place", place.Name)
		return CurrentSnapshot{}, nil, ErrUpstream
	}
	if aqErr != nil {
		s.log.Info("air quality unavailable", "place", place.Name, "error", aqErr)
	}

	c := fc.Current
	snap := CurrentSnapshot{
		Time:                 c.Time,
		TemperatureC:         c.Temperature,
		ApparentTemperatureC: c.ApparentTemperature,
		HumidityPct:          c.RelativeHumidity,
		PressureMb:           c.PressureMSL,
		WindKmh:              c.WindSpeed,
		WeatherCode:          c.WeatherCode,
		IsDay:                c.IsDay != nil && *c.IsDay == 1,
		VisibilityKm:         alignedVisibility(fc.Hourly, c.Time),
	}
	if aqErr == nil {
		snap.AQI = alignedAQI(aq.Hourly, c.Time)
	}

	return snap, forecastDays(fc.Daily), nil
}

func alignedVisibility(h *HourlyVisibility, target string) *float64 {
	if h == nil || len(h.Time) == 0 || len(h.Visibility) == 0 {
		return nil
	}
	m := at(h.Visibility, ClosestIndex(h.Time, target))
	if m == nil {
		return nil
	}
	km := *m / 1000
	return &km
}

func alignedAQI(h *AirQualityHourly, target string) *int {
	if h == nil || len(h.Time) == 0 || len(h.USAQI) == 0 {
		return nil
	}
	v := at(h.USAQI, ClosestIndex(h.Time, target))
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

// forecastDays skips index 0 (today) and keeps at most MaxForecastDays.
func forecastDays(d *DailySeries) []ForecastDay {
	if d == nil || len(d.Time) < 2 {
		return []ForecastDay{}
	}
	n := min(MaxForecastDays, len(d.Time)-1)
	days := make([]ForecastDay, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, ForecastDay{
			Date:        d.Time[i],
			WeatherCode: at(d.WeatherCode, i),
			MaxC:        at(d.TemperatureMax, i),
			MinC:        at(d.TemperatureMin, i),
		})
	}
	return days
}
