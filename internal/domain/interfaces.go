package domain

import (
	"context"
	"time"
)

// Filter narrows repository listings. Zero values match everything.
type Filter struct {
	Carrier   Carrier
	Location  string
	TimeOfDay TimeOfDay
	From      time.Time
	To        time.Time
}

// Matches reports whether a measurement satisfies every set field.
func (f Filter) Matches(m Measurement) bool {
	if f.Carrier != "" && m.Carrier != f.Carrier {
		return false
	}
	if f.Location != "" && m.Location != f.Location {
		return false
	}
	if f.TimeOfDay != "" && TimeOfDayFor(m.Timestamp) != f.TimeOfDay {
		return false
	}
	if !f.From.IsZero() && m.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && m.Timestamp.After(f.To) {
		return false
	}
	return true
}

// MeasurementWriter persists measurements produced by the worker pool.
type MeasurementWriter interface {
	AddBatch(ctx context.Context, measurements []Measurement) error
}

// MeasurementReader exposes the queries used by the stats service.
type MeasurementReader interface {
	List(ctx context.Context, filter Filter) ([]Measurement, error)
	Count(ctx context.Context) (int, error)
}

// MeasurementRepository aggregates the write and read capabilities required by the service.
type MeasurementRepository interface {
	MeasurementWriter
	MeasurementReader
}

// BatchSampler produces measurement batches that will be processed by workers.
type BatchSampler interface {
	Run(ctx context.Context, out chan<- Batch)
}

// WorkerPool consumes batches and stores their measurements via the repository.
type WorkerPool interface {
	Run(ctx context.Context, batches <-chan Batch)
}
