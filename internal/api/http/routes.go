package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherly/weatherly/internal/weather"
)

var validate = validator.New()

// Defaults supplies the view bounds used when a request omits them.
type Defaults struct {
	Units weather.Units
	Days  int
	Hours int
}

// RegisterRoutes wires the dashboard HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, geo weather.Geocoder, def Defaults) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c, def)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.Search(c.UserContext(), req)
		if err != nil {
			return searchError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/onecall", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c, def)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Coords == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}
		req.OneCall = true
		if ex := c.Query("exclude"); ex != "" {
			req.Options.Exclude = strings.Split(ex, ",")
		}

		view, err := service.Search(c.UserContext(), req)
		if err != nil {
			return searchError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/geo/direct", func(c *fiber.Ctx) error {
		q := c.Query("q")
		if strings.TrimSpace(q) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}
		limit := c.QueryInt("limit", 5)

		candidates, err := geo.Geocode(c.UserContext(), q, limit)
		if err != nil {
			return searchError(err)
		}
		return c.JSON(candidates)
	})

	v1.Get("/geo/reverse", func(c *fiber.Ctx) error {
		coords, err := parseCoords(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if coords == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}
		limit := c.QueryInt("limit", 1)

		candidates, err := geo.ReverseGeocode(c.UserContext(), *coords, limit)
		if err != nil {
			return searchError(err)
		}
		return c.JSON(candidates)
	})
}

// weatherQuery holds validated query parameters for the weather endpoints.
type weatherQuery struct {
	Query string
	Units string `validate:"omitempty,oneof=metric imperial"`
	Days  int    `validate:"omitempty,min=1,max=7"`
	Hours int    `validate:"omitempty,min=1,max=24"`
}

func parseWeatherQuery(c *fiber.Ctx, def Defaults) (weather.SearchRequest, error) {
	q := weatherQuery{
		Query: c.Query("q"),
		Units: c.Query("units"),
		Days:  c.QueryInt("days", 0),
		Hours: c.QueryInt("hours", 0),
	}
	if err := validate.Struct(q); err != nil {
		return weather.SearchRequest{}, err
	}

	coords, err := parseCoords(c)
	if err != nil {
		return weather.SearchRequest{}, err
	}
	if coords == nil && strings.TrimSpace(q.Query) == "" {
		return weather.SearchRequest{}, errors.New("either q or lat and lon query parameters are required")
	}

	req := weather.SearchRequest{
		Query:  q.Query,
		Coords: coords,
		Units:  def.Units,
		Options: weather.ViewOptions{
			Days:  def.Days,
			Hours: def.Hours,
		},
	}
	if q.Units != "" {
		req.Units = weather.Units(q.Units)
	}
	if q.Days > 0 {
		req.Options.Days = q.Days
	}
	if q.Hours > 0 {
		req.Options.Hours = q.Hours
	}
	return req, nil
}

// parseCoords returns nil when neither lat nor lon is present, and an
// error when only one of the pair is given or a value fails to parse.
func parseCoords(c *fiber.Ctx) (*weather.Coordinates, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("invalid lon value")
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

// searchError maps the domain error taxonomy onto HTTP statuses.
func searchError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrGeolocationUnavailable):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, weather.ErrUnauthorized),
		errors.Is(err, weather.ErrUpstream),
		errors.Is(err, weather.ErrTransport),
		errors.Is(err, weather.ErrMalformedData):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
