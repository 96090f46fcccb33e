package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/weatherly/weatherly/internal/weather"
)

// AppConfig is the process-wide configuration, read once at startup and
// injected into the components that need it.
type AppConfig struct {
	// OpenWeather credential, shared by all endpoint families.
	OpenWeatherAPIKey string

	// Base URL overrides, mainly for tests; empty means the public
	// OpenWeather endpoints.
	WeatherBaseURL string
	OneCallBaseURL string
	GeoBaseURL     string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// Defaults for the dashboard view.
	DefaultUnits weather.Units
	ForecastDays int // daily summaries to return (bounded by the 5-day horizon)
	HourlyWindow int // hourly entries to return (8 x 3h ~ next 24 hours)

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	cfg.WeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.OneCallBaseURL = os.Getenv("OPENWEATHER_ONECALL_URL")
	cfg.GeoBaseURL = os.Getenv("OPENWEATHER_GEO_URL")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	units := weather.Units(getenvDefault("DEFAULT_UNITS", string(weather.UnitsMetric)))
	if !units.Valid() {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %q", units)
	}
	cfg.DefaultUnits = units

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
	cfg.HourlyWindow = getenvInt("HOURLY_WINDOW", 8)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
