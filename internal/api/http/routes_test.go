package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/weatherly/weatherly/internal/weather"
)

type stubProvider struct {
	view *weather.View
	err  error
}

func (s *stubProvider) Snapshot(ctx context.Context, coords weather.Coordinates, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	return s.view, s.err
}

func (s *stubProvider) OneCall(ctx context.Context, coords weather.Coordinates, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	return s.view, s.err
}

type stubGeo struct {
	locs []weather.Location
	err  error
}

func (s *stubGeo) Geocode(ctx context.Context, query string, limit int) ([]weather.Location, error) {
	return s.locs, s.err
}

func (s *stubGeo) ReverseGeocode(ctx context.Context, coords weather.Coordinates, limit int) ([]weather.Location, error) {
	return s.locs, s.err
}

func testApp(p weather.Provider, g weather.Geocoder) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	svc := weather.NewService(p, g, zap.NewNop().Sugar())
	RegisterRoutes(app, svc, g, Defaults{Units: weather.UnitsMetric, Days: 5, Hours: 8})
	return app
}

func request(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestWeatherRequiresLocation(t *testing.T) {
	app := testApp(&stubProvider{}, &stubGeo{})

	resp := request(t, app, "/api/v1/weather")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWeatherRejectsBadParams(t *testing.T) {
	app := testApp(&stubProvider{}, &stubGeo{})

	cases := []string{
		"/api/v1/weather?q=Paris&units=kelvin",
		"/api/v1/weather?q=Paris&days=8",
		"/api/v1/weather?q=Paris&hours=25",
		"/api/v1/weather?lat=51.5", // lon missing
		"/api/v1/weather?lat=abc&lon=0",
	}
	for _, url := range cases {
		if resp := request(t, app, url); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, resp.StatusCode)
		}
	}
}

func TestWeatherUnknownCity(t *testing.T) {
	app := testApp(&stubProvider{}, &stubGeo{locs: nil})

	resp := request(t, app, "/api/v1/weather?q=Atlantis")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWeatherUpstreamFailure(t *testing.T) {
	p := &stubProvider{err: fmt.Errorf("%w: provider exploded", weather.ErrUpstream)}
	g := &stubGeo{locs: []weather.Location{{Name: "Paris", Country: "FR", Lat: 48.9, Lon: 2.4}}}
	app := testApp(p, g)

	resp := request(t, app, "/api/v1/weather?q=Paris")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestWeatherSuccess(t *testing.T) {
	view := &weather.View{
		Current: weather.Current{Temp: 12},
		Hourly:  []weather.HourlyEntry{},
		Daily:   []weather.DailySummary{},
		Alerts:  []weather.Alert{},
	}
	g := &stubGeo{locs: []weather.Location{{Name: "Paris", Country: "FR", Lat: 48.9, Lon: 2.4}}}
	app := testApp(&stubProvider{view: view}, g)

	resp := request(t, app, "/api/v1/weather?q=Paris&units=imperial&days=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestOneCallRequiresCoords(t *testing.T) {
	app := testApp(&stubProvider{}, &stubGeo{})

	resp := request(t, app, "/api/v1/weather/onecall?q=Paris")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGeoDirectRequiresQuery(t *testing.T) {
	app := testApp(&stubProvider{}, &stubGeo{})

	resp := request(t, app, "/api/v1/geo/direct")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGeoReverse(t *testing.T) {
	g := &stubGeo{locs: []weather.Location{{Name: "Paris", Country: "FR", Lat: 48.9, Lon: 2.4}}}
	app := testApp(&stubProvider{}, g)

	resp := request(t, app, "/api/v1/geo/reverse?lat=48.9&lon=2.4")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
