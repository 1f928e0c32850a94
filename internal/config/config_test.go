package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"DEFAULT_CITY", "DEFAULT_LAT", "DEFAULT_LON", "PREFERRED_COUNTRY", "GEOCODER_LANGUAGE",
	"GEOCODER_COUNT", "HTTP_TIMEOUT", "SEARCH_TIMEOUT", "GEOLOCATION_TIMEOUT",
	"GEOLOCATION_MAX_AGE", "DEVICE_LAT", "DEVICE_LON", "GEOLOCATION_URL", "GEOCODING_URL",
	"NOMINATIM_URL", "FORECAST_URL", "AIR_QUALITY_URL", "ARCHIVE_URL", "USER_AGENT",
	"STORE_PATH", "REFRESH_INTERVAL", "PORT", "LOG_LEVEL",
}

// clearEnv blanks every key Load reads; blank means default.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", cfg.DefaultCity)
	assert.Equal(t, 19.07283, cfg.DefaultLat)
	assert.Equal(t, 72.88261, cfg.DefaultLon)
	assert.Equal(t, "IN", cfg.PreferredCountry)
	assert.Equal(t, 10, cfg.GeocoderCount)
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 5*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, time.Minute, cfg.GeolocationMaxAge)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Nil(t, cfg.DeviceLat)
	assert.Empty(t, cfg.StorePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_CITY", "Pune")
	t.Setenv("SEARCH_TIMEOUT", "2s")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("DEVICE_LAT", "18.52")
	t.Setenv("DEVICE_LON", "73.85")
	t.Setenv("STORE_PATH", "/tmp/prefs.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Pune", cfg.DefaultCity)
	assert.Equal(t, 2*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	require.NotNil(t, cfg.DeviceLat)
	assert.Equal(t, 18.52, *cfg.DeviceLat)
	assert.Equal(t, 73.85, *cfg.DeviceLon)
	assert.Equal(t, "/tmp/prefs.db", cfg.StorePath)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad duration", "SEARCH_TIMEOUT", "soon"},
		{"zero timeout", "SEARCH_TIMEOUT", "0s"},
		{"bad latitude", "DEFAULT_LAT", "north"},
		{"latitude out of range", "DEFAULT_LAT", "95"},
		{"count", "GEOCODER_COUNT", "0"},
		{"country", "PREFERRED_COUNTRY", "IND"},
		{"url", "FORECAST_URL", "not a url"},
		{"port", "PORT", "http"},
		{"level", "LOG_LEVEL", "loud"},
		{"half device position", "DEVICE_LAT", "18.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
