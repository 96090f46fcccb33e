package weather

import "context"

// Provider abstracts the upstream weather source. Implementations return a
// fully normalized View in the requested unit system; unit conversion
// happens exactly once, inside the implementation.
type Provider interface {
	// Snapshot fetches current conditions plus the 3-hour/5-day forecast
	// as a concurrent pair and normalizes them. Either failure fails the
	// pair; no partial view is produced.
	Snapshot(ctx context.Context, coords Coordinates, units Units, opts ViewOptions) (*View, error)

	// OneCall fetches the richer one-call feed (minutely/hourly/daily and
	// alerts) and normalizes it.
	OneCall(ctx context.Context, coords Coordinates, units Units, opts ViewOptions) (*View, error)
}

// Geocoder turns free-text queries and device coordinates into candidate
// locations.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]Location, error)
	ReverseGeocode(ctx context.Context, coords Coordinates, limit int) ([]Location, error)
}
