package weather

import "errors"

var (
	// ErrNotFound is returned when no geocoder produced a result for a name query.
	ErrNotFound = errors.New("place not found")

	// ErrUpstream is returned when the weather service response is unusable.
	ErrUpstream = errors.New("weather service returned no current conditions")

	// ErrTimeout marks a search that exceeded its time bound.
	ErrTimeout = errors.New("search timed out")

	// ErrNoData is returned when the archive has nothing for the requested day.
	ErrNoData = errors.New("no historical data available")

	// ErrInvalidPlace is returned when a place has no name or its
	// coordinates are out of range.
	ErrInvalidPlace = errors.New("invalid place")
)
