package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather/providers"
)

type AppConfig struct {
	// DefaultCity is geocoded once at startup and is the fallback place.
	// DefaultLat/DefaultLon are used only when it cannot be geocoded.
	DefaultCity string  `validate:"required"`
	DefaultLat  float64 `validate:"latitude"`
	DefaultLon  float64 `validate:"longitude"`

	PreferredCountry string `validate:"omitempty,len=2"`
	GeocoderLanguage string `validate:"required"`
	GeocoderCount    int    `validate:"min=1,max=100"`

	HTTPTimeout        time.Duration `validate:"gt=0"`
	SearchTimeout      time.Duration `validate:"gt=0"`
	GeolocationTimeout time.Duration `validate:"gt=0"`
	GeolocationMaxAge  time.Duration `validate:"gte=0"`

	// DeviceLat/DeviceLon pin the device position instead of asking
	// GeolocationURL. Both or neither must be set.
	DeviceLat      *float64 `validate:"omitempty,latitude"`
	DeviceLon      *float64 `validate:"omitempty,longitude"`
	GeolocationURL string   `validate:"omitempty,url"`

	GeocodingURL  string `validate:"required,url"`
	NominatimURL  string `validate:"required,url"`
	ForecastURL   string `validate:"required,url"`
	AirQualityURL string `validate:"required,url"`
	ArchiveURL    string `validate:"required,url"`
	UserAgent     string `validate:"required"`

	// StorePath is the SQLite file for preferences; empty keeps them in memory.
	StorePath string

	// RefreshInterval re-renders the current place in serve mode; 0 disables.
	RefreshInterval time.Duration `validate:"gte=0"`

	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{
		DefaultCity:      getenvDefault("DEFAULT_CITY", "Mumbai"),
		PreferredCountry: getenvDefault("PREFERRED_COUNTRY", "IN"),
		GeocoderLanguage: getenvDefault("GEOCODER_LANGUAGE", "en"),
		GeolocationURL:   getenvDefault("GEOLOCATION_URL", providers.DefaultIPGeolocationURL),
		GeocodingURL:     getenvDefault("GEOCODING_URL", providers.DefaultOpenMeteoGeocodingURL),
		NominatimURL:     getenvDefault("NOMINATIM_URL", providers.DefaultNominatimURL),
		ForecastURL:      getenvDefault("FORECAST_URL", providers.DefaultOpenMeteoEndpoints.Forecast),
		AirQualityURL:    getenvDefault("AIR_QUALITY_URL", providers.DefaultOpenMeteoEndpoints.AirQuality),
		ArchiveURL:       getenvDefault("ARCHIVE_URL", providers.DefaultOpenMeteoEndpoints.Archive),
		UserAgent:        getenvDefault("USER_AGENT", "weather-dashboard/1.0"),
		StorePath:        os.Getenv("STORE_PATH"),
		Port:             getenvDefault("PORT", "8080"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DefaultLat, err = getenvFloat("DEFAULT_LAT", 19.07283); err != nil {
		return nil, err
	}
	if cfg.DefaultLon, err = getenvFloat("DEFAULT_LON", 72.88261); err != nil {
		return nil, err
	}
	if cfg.GeocoderCount, err = getenvInt("GEOCODER_COUNT", 10); err != nil {
		return nil, err
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"SEARCH_TIMEOUT", "5s", &cfg.SearchTimeout},
		{"GEOLOCATION_TIMEOUT", "5s", &cfg.GeolocationTimeout},
		{"GEOLOCATION_MAX_AGE", "60s", &cfg.GeolocationMaxAge},
		{"REFRESH_INTERVAL", "0", &cfg.RefreshInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if cfg.DeviceLat, err = getenvOptionalFloat("DEVICE_LAT"); err != nil {
		return nil, err
	}
	if cfg.DeviceLon, err = getenvOptionalFloat("DEVICE_LON"); err != nil {
		return nil, err
	}
	if (cfg.DeviceLat == nil) != (cfg.DeviceLon == nil) {
		return nil, fmt.Errorf("DEVICE_LAT and DEVICE_LON must be set together")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Level returns the slog level for LogLevel.
func (c *AppConfig) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvOptionalFloat(key string) (*float64, error) {
	if os.Getenv(key) == "" {
		return nil, nil
	}
	f, err := getenvFloat(key, 0)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
