package weather

import "errors"

var (
	// ErrNotFound is returned when no place or weather data matches the
	// requested location.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the provider rejects the API key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream is returned when the provider answers with an unexpected
	// status or a structured error message.
	ErrUpstream = errors.New("upstream error")

	// ErrTransport is returned on network-level failure.
	ErrTransport = errors.New("transport error")

	// ErrMalformedData is returned when a successful provider response is
	// missing a required field.
	ErrMalformedData = errors.New("malformed upstream data")

	// ErrGeolocationUnavailable is returned when the device location
	// forwarded by the caller is missing or out of range.
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")

	// ErrSuperseded is returned when a newer search replaced this one
	// before it completed. The result must be discarded.
	ErrSuperseded = errors.New("search superseded")
)
