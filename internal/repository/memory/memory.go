package memory

import (
	"context"
	"sync"

	"campusnet-service/internal/domain"
)

// Repository stores measurements in memory and satisfies the repository contract.
type Repository struct {
	mu           sync.RWMutex
	measurements []domain.Measurement
}

// New creates an empty in-memory repository instance.
func New() *Repository {
	return &Repository{}
}

// Seed replaces the internal storage with the provided sample data.
func (r *Repository) Seed(measurements []domain.Measurement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]domain.Measurement, len(measurements))
	copy(copied, measurements)
	r.measurements = copied
}

// AddBatch appends measurements to the repository.
func (r *Repository) AddBatch(_ context.Context, measurements []domain.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.measurements = append(r.measurements, measurements...)
	return nil
}

// List returns every measurement matching the filter, in insertion order.
func (r *Repository) List(_ context.Context, filter domain.Filter) ([]domain.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Measurement, 0, len(r.measurements))
	for i := range r.measurements {
		if filter.Matches(r.measurements[i]) {
			out = append(out, r.measurements[i])
		}
	}
	return out, nil
}

// Count returns the number of stored measurements.
func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.measurements), nil
}

var _ domain.MeasurementRepository = (*Repository)(nil)
