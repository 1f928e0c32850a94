package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenMeteoForecast(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "19.07", q.Get("latitude"))
		assert.Equal(t, "72.88", q.Get("longitude"))
		assert.Equal(t, currentFields, q.Get("current"))
		assert.Equal(t, "visibility", q.Get("hourly"))
		assert.Equal(t, "kmh", q.Get("windspeed_unit"))
		assert.Equal(t, "7", q.Get("forecast_days"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`{
			"current": {"time": "2024-05-01T11:45", "temperature_2m": 31.2, "weather_code": 2, "is_day": 1},
			"hourly": {"time": ["2024-05-01T11:00", "2024-05-01T12:00"], "visibility": [null, 24140]},
			"daily": {"time": ["2024-05-01"], "weather_code": [2], "temperature_2m_max": [33.1], "temperature_2m_min": [null]}
		}`))
	})

	p := NewOpenMeteoProvider(srv.Client(), "test-agent", OpenMeteoEndpoints{Forecast: srv.URL})
	resp, err := p.Forecast(context.Background(), 19.07, 72.88)
	require.NoError(t, err)

	require.NotNil(t, resp.Current)
	assert.Equal(t, 31.2, *resp.Current.Temperature)
	assert.Nil(t, resp.Current.ApparentTemperature)
	assert.Equal(t, 1, *resp.Current.IsDay)
	require.Len(t, resp.Hourly.Visibility, 2)
	assert.Nil(t, resp.Hourly.Visibility[0])
	assert.Equal(t, 24140.0, *resp.Hourly.Visibility[1])
	assert.Nil(t, resp.Daily.TemperatureMin[0])
}

func TestOpenMeteoAirQualityAndArchive(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/air":
			assert.Equal(t, "us_aqi", q.Get("hourly"))
			w.Write([]byte(`{"hourly": {"time": ["2024-05-01T11:00"], "us_aqi": [87]}}`))
		case "/archive":
			assert.Equal(t, "2024-03-10", q.Get("start_date"))
			assert.Equal(t, "2024-03-10", q.Get("end_date"))
			assert.Equal(t, archiveFields, q.Get("hourly"))
			w.Write([]byte(`{"hourly": {"time": ["2024-03-10T00:00"], "temperature_2m": [18.5], "weather_code": [0]}}`))
		default:
			http.NotFound(w, r)
		}
	})

	p := NewOpenMeteoProvider(srv.Client(), "", OpenMeteoEndpoints{
		AirQuality: srv.URL + "/air",
		Archive:    srv.URL + "/archive",
	})

	aq, err := p.AirQuality(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 87.0, *aq.Hourly.USAQI[0])

	ar, err := p.Archive(context.Background(), 1, 2, time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 18.5, *ar.Hourly.Temperature[0])
	assert.Equal(t, 0, *ar.Hourly.WeatherCode[0])
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	p := NewOpenMeteoProvider(srv.Client(), "", OpenMeteoEndpoints{Forecast: srv.URL})
	for i := 0; i < 6; i++ {
		_, err := p.Forecast(context.Background(), 0, 0)
		require.ErrorIs(t, err, errServerError)
	}

	_, err := p.Forecast(context.Background(), 0, 0)
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, int32(6), hits.Load(), "no request once the breaker is open")
}

func TestRateLimitedAndUnexpectedStatus(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusTooManyRequests)
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	})

	g := NewOpenMeteoGeocoder(srv.Client(), "", srv.URL, "en", 10)
	_, err := g.Search(context.Background(), "Mumbai")
	assert.ErrorIs(t, err, errRateLimited)

	status.Store(http.StatusBadRequest)
	_, err = g.Search(context.Background(), "Mumbai")
	assert.ErrorIs(t, err, errUnexpected)
}

func TestOpenMeteoGeocoderSearch(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("count"))
		assert.Equal(t, "en", q.Get("language"))
		if q.Get("name") == "Atlantis" {
			w.Write([]byte(`{"generationtime_ms": 0.4}`))
			return
		}
		w.Write([]byte(`{"results": [
			{"name": "Mumbai", "latitude": 19.07283, "longitude": 72.88261, "country_code": "IN"}
		]}`))
	})

	g := NewOpenMeteoGeocoder(srv.Client(), "", srv.URL, "en", 10)
	res, err := g.Search(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "IN", res[0].CountryCode)
	assert.Equal(t, 72.88261, res[0].Longitude)

	res, err = g.Search(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestNominatimSearch(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		w.Write([]byte(`[
			{"lat": "bogus", "lon": "1", "display_name": "skipped"},
			{"lat": "40.71", "lon": "-74.00", "display_name": "42nd District, NY, USA",
			 "address": {"county": "42nd District", "country_code": "us"}}
		]`))
	})

	g := NewNominatimGeocoder(srv.Client(), "test", srv.URL+"/")
	res, err := g.Search(context.Background(), "42nd")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 40.71, res[0].Latitude)
	assert.Equal(t, "42nd District", res[0].Address.County)
	assert.Equal(t, "us", res[0].Address.CountryCode)
}

func TestNominatimReverse(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		if r.URL.Query().Get("lat") == "0" {
			w.Write([]byte(`{"error": "Unable to geocode"}`))
			return
		}
		w.Write([]byte(`{"display_name": "Bandra, Mumbai", "address": {"city": "Mumbai", "state": "Maharashtra"}}`))
	})

	g := NewNominatimGeocoder(srv.Client(), "test", srv.URL)
	c, err := g.Reverse(context.Background(), 19.05, 72.83)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", c.Address.City)
	assert.Equal(t, 19.05, c.Latitude)

	_, err = g.Reverse(context.Background(), 0, 0)
	assert.ErrorIs(t, err, errNoAddress)
}

func TestIPLocatorReusesRecentFix(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"status": "success", "lat": 19.07, "lon": 72.88}`))
	})

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPLocator(srv.Client(), "", srv.URL)
	l.now = func() time.Time { return clock }

	pos, err := l.Locate(context.Background(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 19.07, pos.Latitude)

	clock = clock.Add(30 * time.Second)
	_, err = l.Locate(context.Background(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	clock = clock.Add(2 * time.Minute)
	_, err = l.Locate(context.Background(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestIPLocatorFailure(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail", "message": "reserved range"}`))
	})

	_, err := NewIPLocator(srv.Client(), "", srv.URL).Locate(context.Background(), time.Minute)
	assert.ErrorIs(t, err, errNoPosition)

	_, err = NoLocator{}.Locate(context.Background(), time.Minute)
	assert.ErrorIs(t, err, errNoPosition)

	pos, err := StaticLocator{Latitude: 1, Longitude: 2}.Locate(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, pos.Longitude)
}
