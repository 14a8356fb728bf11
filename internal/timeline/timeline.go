// Package timeline keeps raw measurement series in an embedded time-series
// store so transports can serve point-by-point history without re-reading
// the repository.
package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/nakabonne/tstorage"

	"campusnet-service/internal/domain"
)

// ErrUnknownMetric marks a metric name that is not stored in the timeline.
var ErrUnknownMetric = errors.New("unknown timeline metric")

// Metric names a measurement axis stored in the timeline.
type Metric string

const (
	MetricSignalStrength Metric = "signal_strength"
	MetricSignalQuality  Metric = "signal_quality"
	MetricSINR           Metric = "sinr"
	MetricDataSpeed      Metric = "data_speed"
)

// Metrics lists every stored axis.
func Metrics() []Metric {
	return []Metric{MetricSignalStrength, MetricSignalQuality, MetricSINR, MetricDataSpeed}
}

// ParseMetric validates a raw metric name.
func ParseMetric(raw string) (Metric, error) {
	switch Metric(raw) {
	case MetricSignalStrength, MetricSignalQuality, MetricSINR, MetricDataSpeed:
		return Metric(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, raw)
}

// Point is one value of a series at a second-precision timestamp.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// Store records measurements as labeled rows in tstorage.
type Store struct {
	storage tstorage.Storage
}

// Open creates a timeline store. With an empty dataPath the series are kept
// in memory only.
func Open(dataPath string) (*Store, error) {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Seconds),
	}
	if dataPath != "" {
		opts = append(opts, tstorage.WithDataPath(dataPath))
	}

	storage, err := tstorage.NewStorage(opts...)
	if err != nil {
		return nil, fmt.Errorf("timeline: open storage: %w", err)
	}
	return &Store{storage: storage}, nil
}

// Close flushes and releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}

// Record stores all four metric axes of every measurement.
func (s *Store) Record(measurements []domain.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	rows := make([]tstorage.Row, 0, len(measurements)*4)
	for _, m := range measurements {
		labels := []tstorage.Label{
			{Name: "carrier", Value: string(m.Carrier)},
			{Name: "location", Value: m.Location},
		}
		ts := m.Timestamp.Unix()
		for metric, value := range map[Metric]float64{
			MetricSignalStrength: m.SignalStrength,
			MetricSignalQuality:  m.SignalQuality,
			MetricSINR:           m.SINR,
			MetricDataSpeed:      m.DataSpeed,
		} {
			rows = append(rows, tstorage.Row{
				Metric:    string(metric),
				Labels:    labels,
				DataPoint: tstorage.DataPoint{Timestamp: ts, Value: value},
			})
		}
	}

	if err := s.storage.InsertRows(rows); err != nil {
		return fmt.Errorf("timeline: insert rows: %w", err)
	}
	return nil
}

// Series returns the stored points for a metric, carrier and location within
// [from, to]. Returns domain.ErrNoData when nothing matches.
func (s *Store) Series(metric Metric, carrier domain.Carrier, location string, from, to time.Time) ([]Point, error) {
	labels := []tstorage.Label{
		{Name: "carrier", Value: string(carrier)},
		{Name: "location", Value: location},
	}

	points, err := s.storage.Select(string(metric), labels, from.Unix(), to.Unix())
	if err != nil {
		if errors.Is(err, tstorage.ErrNoDataPoints) {
			return nil, domain.ErrNoData
		}
		return nil, fmt.Errorf("timeline: select: %w", err)
	}
	if len(points) == 0 {
		return nil, domain.ErrNoData
	}

	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Timestamp: time.Unix(p.Timestamp, 0).UTC(), Value: p.Value}
	}
	return out, nil
}
