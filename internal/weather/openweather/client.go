package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/weatherly/weatherly/internal/weather"
)

// Default endpoint families. Overridable through Config for tests.
const (
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultOneCallBaseURL = "https://api.openweathermap.org/data/3.0/onecall"
	DefaultGeoBaseURL     = "https://api.openweathermap.org/geo/1.0"
)

// Config carries the credential and base URLs for the OpenWeather client.
// It is constructed once at process start and injected; the client never
// reads the environment itself.
type Config struct {
	APIKey         string
	WeatherBaseURL string
	OneCallBaseURL string
	GeoBaseURL     string
}

// Client talks to OpenWeather's legacy, one-call, and geocoding endpoints.
// Every call is attempted exactly once; failures map onto the weather
// package's error taxonomy.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.SugaredLogger
}

// NewClient creates a Client. Empty base URLs fall back to the public
// OpenWeather endpoints.
func NewClient(cfg Config, httpClient *http.Client, log *zap.SugaredLogger) *Client {
	if cfg.WeatherBaseURL == "" {
		cfg.WeatherBaseURL = DefaultWeatherBaseURL
	}
	if cfg.OneCallBaseURL == "" {
		cfg.OneCallBaseURL = DefaultOneCallBaseURL
	}
	if cfg.GeoBaseURL == "" {
		cfg.GeoBaseURL = DefaultGeoBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

// CurrentByCity fetches current conditions for a free-text city query.
// The provider is always asked for metric values; unit conversion happens
// once, in normalization.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*CurrentResponse, error) {
	values := url.Values{}
	values.Set("q", city)
	return c.current(ctx, values)
}

// CurrentByCoords fetches current conditions for a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, coords weather.Coordinates) (*CurrentResponse, error) {
	return c.current(ctx, coordValues(coords))
}

func (c *Client) current(ctx context.Context, values url.Values) (*CurrentResponse, error) {
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", "metric")

	var payload CurrentResponse
	if err := c.get(ctx, c.cfg.WeatherBaseURL+"/weather", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ForecastByCity fetches the 3-hour/5-day forecast for a city query.
func (c *Client) ForecastByCity(ctx context.Context, city string) (*ForecastResponse, error) {
	values := url.Values{}
	values.Set("q", city)
	return c.forecast(ctx, values)
}

// ForecastByCoords fetches the 3-hour/5-day forecast for a coordinate pair.
func (c *Client) ForecastByCoords(ctx context.Context, coords weather.Coordinates) (*ForecastResponse, error) {
	return c.forecast(ctx, coordValues(coords))
}

func (c *Client) forecast(ctx context.Context, values url.Values) (*ForecastResponse, error) {
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", "metric")

	var payload ForecastResponse
	if err := c.get(ctx, c.cfg.WeatherBaseURL+"/forecast", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchOneCall fetches the raw one-call payload. The unit system is passed
// through to the provider, which delivers values pre-converted.
func (c *Client) FetchOneCall(ctx context.Context, coords weather.Coordinates, units weather.Units, exclude []string) (*OneCallResponse, error) {
	values := coordValues(coords)
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", string(units))
	if len(exclude) > 0 {
		values.Set("exclude", strings.Join(exclude, ","))
	}

	var payload OneCallResponse
	if err := c.get(ctx, c.cfg.OneCallBaseURL, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Geocode forward-geocodes a free-text query into candidate locations.
// An empty query fails before any request is issued.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]weather.Location, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty geocoding query", weather.ErrNotFound)
	}
	if limit < 1 {
		limit = 1
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", c.cfg.APIKey)

	var results []GeoResult
	if err := c.get(ctx, c.cfg.GeoBaseURL+"/direct", values, &results); err != nil {
		return nil, err
	}
	return toLocations(results), nil
}

// ReverseGeocode maps coordinates to candidate locations.
func (c *Client) ReverseGeocode(ctx context.Context, coords weather.Coordinates, limit int) ([]weather.Location, error) {
	if limit < 1 {
		limit = 1
	}

	values := coordValues(coords)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", c.cfg.APIKey)

	var results []GeoResult
	if err := c.get(ctx, c.cfg.GeoBaseURL+"/reverse", values, &results); err != nil {
		return nil, err
	}
	return toLocations(results), nil
}

// Snapshot fetches the current + forecast pair concurrently and normalizes
// them into one view. If either fetch fails the whole pair fails and the
// partial result is discarded.
func (c *Client) Snapshot(ctx context.Context, coords weather.Coordinates, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	var (
		cur *CurrentResponse
		fc  *ForecastResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = c.CurrentByCoords(gctx, coords)
		return err
	})
	g.Go(func() error {
		var err error
		fc, err = c.ForecastByCoords(gctx, coords)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NormalizeLegacy(cur, fc, units, opts)
}

// OneCall fetches and normalizes the one-call feed.
func (c *Client) OneCall(ctx context.Context, coords weather.Coordinates, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	raw, err := c.FetchOneCall(ctx, coords, units, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return NormalizeOneCall(raw, units, opts)
}

// apiError is the structured error body OpenWeather returns alongside
// non-2xx statuses.
type apiError struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
}

// get performs a single GET attempt and decodes the JSON response,
// mapping transport and status failures onto the error taxonomy.
func (c *Client) get(ctx context.Context, endpoint string, values url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}
	c.log.Debugw("openweather request", "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		msg := apiErr.Message
		switch resp.StatusCode {
		case http.StatusNotFound:
			if msg == "" {
				msg = "no data for requested location"
			}
			return fmt.Errorf("%w: %s", weather.ErrNotFound, msg)
		case http.StatusUnauthorized:
			if msg == "" {
				msg = "invalid or missing API key"
			}
			return fmt.Errorf("%w: %s", weather.ErrUnauthorized, msg)
		default:
			if msg == "" {
				msg = resp.Status
			}
			return fmt.Errorf("%w: %s", weather.ErrUpstream, msg)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response body: %v", weather.ErrMalformedData, err)
	}
	return nil
}

func coordValues(coords weather.Coordinates) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	return values
}

func toLocations(results []GeoResult) []weather.Location {
	locs := make([]weather.Location, 0, len(results))
	for _, r := range results {
		locs = append(locs, weather.Location{
			Name:    r.Name,
			Country: r.Country,
			State:   r.State,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}
	return locs
}
