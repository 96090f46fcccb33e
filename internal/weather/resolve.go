package weather

import (
	"context"
	"fmt"
	"strings"
)

// Resolver turns a typed city name or device coordinates into a canonical
// Location.
type Resolver struct {
	geo Geocoder
}

// NewResolver creates a Resolver backed by the given geocoder.
func NewResolver(geo Geocoder) *Resolver {
	return &Resolver{geo: geo}
}

// ResolveQuery forward-geocodes a free-text city query and selects the
// first candidate as the canonical match.
func (r *Resolver) ResolveQuery(ctx context.Context, query string) (Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Location{}, fmt.Errorf("%w: empty location query", ErrNotFound)
	}

	candidates, err := r.geo.Geocode(ctx, query, 5)
	if err != nil {
		return Location{}, err
	}
	if len(candidates) == 0 {
		return Location{}, fmt.Errorf("%w: no match for %q", ErrNotFound, query)
	}
	return candidates[0], nil
}

// ResolveCoords reverse-geocodes device coordinates. When reverse geocoding
// yields nothing the coordinates themselves are returned as a nameless
// Location; that is a degraded but valid result, not an error.
func (r *Resolver) ResolveCoords(ctx context.Context, coords Coordinates) (Location, error) {
	if !coords.Valid() {
		return Location{}, fmt.Errorf("%w: coordinates out of range (%f, %f)",
			ErrGeolocationUnavailable, coords.Lat, coords.Lon)
	}

	candidates, err := r.geo.ReverseGeocode(ctx, coords, 1)
	if err != nil {
		return Location{}, err
	}
	if len(candidates) == 0 {
		return Location{Lat: coords.Lat, Lon: coords.Lon}, nil
	}
	return candidates[0], nil
}
