// Package dataset reads and writes the measurement CSV the service boots
// from. The column layout matches the original campus survey export:
//
//	location,carrier,timestamp,signal_strength,signal_quality,sinr,data_speed
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"campusnet-service/internal/domain"
)

var header = []string{"location", "carrier", "timestamp", "signal_strength", "signal_quality", "sinr", "data_speed"}

// Timestamp layouts accepted on load. The second one is what the original
// survey tooling exported.
var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"}

// Load reads measurements from path. Malformed rows (wrong field count,
// unparsable values, unknown carrier or location, out-of-range metrics) are
// skipped and counted rather than failing the whole load.
func Load(path string) (measurements []domain.Measurement, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if first {
			first = false
			if len(record) > 0 && record[0] == header[0] {
				continue
			}
		}

		m, err := parseRow(record)
		if err != nil {
			skipped++
			continue
		}
		measurements = append(measurements, m)
	}

	return measurements, skipped, nil
}

// Save writes measurements to path via a temp file in the same directory so
// a crash mid-write never leaves a truncated dataset behind.
func Save(path string, measurements []domain.Measurement) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("dataset: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for _, m := range measurements {
		row := []string{
			m.Location,
			string(m.Carrier),
			m.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(m.SignalStrength, 'f', 1, 64),
			strconv.FormatFloat(m.SignalQuality, 'f', 1, 64),
			strconv.FormatFloat(m.SINR, 'f', 1, 64),
			strconv.FormatFloat(m.DataSpeed, 'f', 1, 64),
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("dataset: write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("dataset: close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

func parseRow(record []string) (domain.Measurement, error) {
	if len(record) != len(header) {
		return domain.Measurement{}, fmt.Errorf("dataset: expected %d fields, got %d", len(header), len(record))
	}

	carrier, err := domain.ParseCarrier(record[1])
	if err != nil {
		return domain.Measurement{}, err
	}

	ts, err := parseTimestamp(record[2])
	if err != nil {
		return domain.Measurement{}, err
	}

	values := make([]float64, 4)
	for i, raw := range record[3:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Measurement{}, fmt.Errorf("dataset: field %q: %w", header[3+i], err)
		}
		values[i] = v
	}

	m := domain.Measurement{
		Location:       record[0],
		Carrier:        carrier,
		Timestamp:      ts,
		SignalStrength: values[0],
		SignalQuality:  values[1],
		SINR:           values[2],
		DataSpeed:      values[3],
	}
	if err := m.Validate(); err != nil {
		return domain.Measurement{}, err
	}
	return m, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("dataset: bad timestamp %q: %w", raw, lastErr)
}
