package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/config"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/places"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/store"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather/providers"
)

const appName = "weather-dashboard"

// deps is everything a command needs, built once per invocation.
type deps struct {
	cfg   *config.AppConfig
	log   *slog.Logger
	ctrl  *session.Controller
	live  *session.Live
	close func() error
}

var (
	cfg      *config.AppConfig
	logLevel string
	noColor  bool
	asJSON   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Current conditions, forecast and history for any place",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if noColor {
				color.NoColor = true // disables colorized output globally
			}
			slog.SetDefault(setupLogger(cfg.Level(), cmd.Name() == "serve"))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(serveCmd(), nowCmd(), searchCmd(), historyCmd(), favoritesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger writes text logs to stderr, or JSON for the long-running
// server.
func setupLogger(level slog.Level, server bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if server {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func build() (*deps, error) {
	logger := slog.Default()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	geocoder := providers.NewOpenMeteoGeocoder(httpClient, cfg.UserAgent, cfg.GeocodingURL, cfg.GeocoderLanguage, cfg.GeocoderCount)
	nominatim := providers.NewNominatimGeocoder(httpClient, cfg.UserAgent, cfg.NominatimURL)
	resolver := places.NewResolver(geocoder, nominatim, cfg.PreferredCountry, logger)

	openMeteo := providers.NewOpenMeteoProvider(httpClient, cfg.UserAgent, providers.OpenMeteoEndpoints{
		Forecast:   cfg.ForecastURL,
		AirQuality: cfg.AirQualityURL,
		Archive:    cfg.ArchiveURL,
	})
	service := weather.NewService(openMeteo, openMeteo, openMeteo, logger)

	var locator weather.Locator
	switch {
	case cfg.DeviceLat != nil:
		locator = providers.StaticLocator{Latitude: *cfg.DeviceLat, Longitude: *cfg.DeviceLon}
	case cfg.GeolocationURL != "":
		locator = providers.NewIPLocator(httpClient, cfg.UserAgent, cfg.GeolocationURL)
	default:
		locator = providers.NoLocator{}
	}

	var (
		kv        store.KV
		closeFunc = func() error { return nil }
	)
	if cfg.StorePath != "" {
		sq, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		kv, closeFunc = sq, sq.Close
		logger.Debug("preferences stored in sqlite", "path", cfg.StorePath)
	} else {
		kv = store.NewMemoryStore()
	}

	ctrl := session.NewController(resolver, service, locator, store.NewPreferences(kv), session.Config{
		DefaultCity:        cfg.DefaultCity,
		DefaultLat:         cfg.DefaultLat,
		DefaultLon:         cfg.DefaultLon,
		SearchTimeout:      cfg.SearchTimeout,
		GeolocationTimeout: cfg.GeolocationTimeout,
		GeolocationMaxAge:  cfg.GeolocationMaxAge,
	}, logger)

	live := session.NewLive(ctrl)
	return &deps{
		cfg:   cfg,
		log:   logger.With("session", live.ID),
		ctrl:  ctrl,
		live:  live,
		close: closeFunc,
	}, nil
}
