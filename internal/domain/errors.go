package domain

import "errors"

var (
	// ErrUnknownCarrier is returned when a carrier name is not one of the four operators.
	ErrUnknownCarrier = errors.New("unknown carrier")
	// ErrUnknownLocation is returned when a location is not in the campus catalog.
	ErrUnknownLocation = errors.New("unknown campus location")
	// ErrOutOfRange is returned when a metric value falls outside its physical bounds.
	ErrOutOfRange = errors.New("metric value out of range")
	// ErrNoData is returned by queries that match no stored measurements.
	ErrNoData = errors.New("no measurements match the query")
)
