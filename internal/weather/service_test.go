package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForecast struct {
	resp ForecastResponse
	err  error
}

func (f fakeForecast) Forecast(ctx context.Context, lat, lon float64) (ForecastResponse, error) {
	return f.resp, f.err
}

type fakeAir struct {
	resp AirQualityResponse
	err  error
}

func (f fakeAir) AirQuality(ctx context.Context, lat, lon float64) (AirQualityResponse, error) {
	return f.resp, f.err
}

type fakeArchive struct {
	resp ArchiveResponse
	err  error
	day  *time.Time
}

func (f fakeArchive) Archive(ctx context.Context, lat, lon float64, day time.Time) (ArchiveResponse, error) {
	if f.day != nil {
		*f.day = day
	}
	return f.resp, f.err
}

func ptr[T any](v T) *T { return &v }

var mumbai = Place{Name: "Mumbai", Latitude: 19.07, Longitude: 72.88, CountryCode: "IN"}

func sevenDays() *DailySeries {
	d := &DailySeries{}
	for i := 0; i < 7; i++ {
		d.Time = append(d.Time, fmt.Sprintf("2024-05-%02d", i+1))
		d.WeatherCode = append(d.WeatherCode, ptr(i))
		d.TemperatureMax = append(d.TemperatureMax, ptr(30.0+float64(i)))
		d.TemperatureMin = append(d.TemperatureMin, ptr(20.0+float64(i)))
	}
	return d
}

func fullForecast() ForecastResponse {
	return ForecastResponse{
		Current: &CurrentConditions{
			Time:                "2024-05-01T11:45",
			Temperature:         ptr(31.2),
			ApparentTemperature: ptr(36.0),
			RelativeHumidity:    ptr(70.0),
			PressureMSL:         ptr(1008.4),
			WindSpeed:           ptr(14.0),
			WeatherCode:         ptr(2),
			IsDay:               ptr(1),
		},
		Hourly: &HourlyVisibility{
			Time:       []string{"2024-05-01T10:00", "2024-05-01T11:00", "2024-05-01T12:00"},
			Visibility: []*float64{ptr(8000.0), ptr(9000.0), ptr(24140.0)},
		},
		Daily: sevenDays(),
	}
}

func TestBuildSnapshot(t *testing.T) {
	t.Parallel()

	air := fakeAir{resp: AirQualityResponse{Hourly: &AirQualityHourly{
		Time:  []string{"2024-05-01T11:00", "2024-05-01T12:00"},
		USAQI: []*float64{ptr(140.0), ptr(152.4)},
	}}}
	svc := NewService(fakeForecast{resp: fullForecast()}, air, nil, nil)

	snap, days, err := svc.BuildSnapshot(context.Background(), mumbai)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T11:45", snap.Time)
	assert.True(t, snap.IsDay)
	require.NotNil(t, snap.VisibilityKm)
	assert.InDelta(t, 24.14, *snap.VisibilityKm, 1e-9)
	require.NotNil(t, snap.AQI)
	assert.Equal(t, 152, *snap.AQI)
	assert.Equal(t, 2, *snap.WeatherCode)

	require.Len(t, days, 5)
	assert.Equal(t, "2024-05-02", days[0].Date)
	assert.Equal(t, "2024-05-06", days[4].Date)
	assert.Equal(t, 31.0, *days[0].MaxC)
}

func TestBuildSnapshotAirQualityFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	svc := NewService(
		fakeForecast{resp: fullForecast()},
		fakeAir{err: errors.New("connection reset")},
		nil, nil,
	)

	snap, _, err := svc.BuildSnapshot(context.Background(), mumbai)
	require.NoError(t, err)
	assert.Nil(t, snap.AQI)
	assert.NotNil(t, snap.TemperatureC)
}

func TestBuildSnapshotWithoutCurrentSection(t *testing.T) {
	t.Parallel()

	resp := fullForecast()
	resp.Current = nil
	svc := NewService(fakeForecast{resp: resp}, fakeAir{}, nil, nil)

	_, _, err := svc.BuildSnapshot(context.Background(), mumbai)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestBuildSnapshotForecastFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(fakeForecast{err: errors.New("503")}, fakeAir{}, nil, nil)

	_, _, err := svc.BuildSnapshot(context.Background(), mumbai)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestBuildSnapshotDegradesMissingFields(t *testing.T) {
	t.Parallel()

	resp := ForecastResponse{
		Current: &CurrentConditions{Time: "2024-05-01T11:45"},
		Hourly:  &HourlyVisibility{Time: []string{"2024-05-01T11:00"}, Visibility: []*float64{nil}},
	}
	svc := NewService(fakeForecast{resp: resp}, nil, nil, nil)

	snap, days, err := svc.BuildSnapshot(context.Background(), mumbai)
	require.NoError(t, err)
	assert.Nil(t, snap.TemperatureC)
	assert.Nil(t, snap.VisibilityKm)
	assert.Nil(t, snap.WeatherCode)
	assert.Nil(t, snap.AQI)
	assert.False(t, snap.IsDay)
	assert.Empty(t, days)
}

func TestForecastDays(t *testing.T) {
	t.Parallel()

	short := &DailySeries{Time: []string{"2024-05-01", "2024-05-02", "2024-05-03"}}
	days := forecastDays(short)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-05-02", days[0].Date)
	assert.Nil(t, days[0].MaxC)

	assert.Empty(t, forecastDays(&DailySeries{Time: []string{"2024-05-01"}}))
	assert.Empty(t, forecastDays(nil))
}

func TestNewPlace(t *testing.T) {
	t.Parallel()

	p, err := NewPlace("Pune", 18.52, 73.86, "IN")
	require.NoError(t, err)
	assert.Equal(t, "Pune", p.Name)

	_, err = NewPlace("Nowhere", 91, 0, "")
	assert.ErrorIs(t, err, ErrInvalidPlace)

	_, err = NewPlace("Nowhere", 0, 181, "")
	assert.ErrorIs(t, err, ErrInvalidPlace)

	assert.Equal(t, "19.07, 72.88", CoordinateName(19.0728, 72.8826))
}
