// Package postgres persists measurements through database/sql with the pq driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"campusnet-service/internal/domain"
)

const (
	createTableStatement = `
CREATE TABLE IF NOT EXISTS measurements (
    id BIGSERIAL PRIMARY KEY,
    location TEXT NOT NULL,
    carrier TEXT NOT NULL,
    ts TIMESTAMPTZ NOT NULL,
    signal_strength DOUBLE PRECISION NOT NULL,
    signal_quality DOUBLE PRECISION NOT NULL,
    sinr DOUBLE PRECISION NOT NULL,
    data_speed DOUBLE PRECISION NOT NULL
)`
	carrierLocationIndexStatement = `
CREATE INDEX IF NOT EXISTS measurements_carrier_location_idx
ON measurements (carrier, location)`
	timestampIndexStatement = `
CREATE INDEX IF NOT EXISTS measurements_ts_idx
ON measurements (ts DESC)`

	insertStatement = `
INSERT INTO measurements (location, carrier, ts, signal_strength, signal_quality, sinr, data_speed)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectColumns = `location, carrier, ts, signal_strength, signal_quality, sinr, data_speed`
)

// Config contains the configuration required to connect to Postgres.
type Config struct {
	DSN         string
	PingTimeout time.Duration
}

// Repository implements the measurement repository contract backed by Postgres.
type Repository struct {
	db *sql.DB
}

// New opens a connection pool, verifies connectivity and ensures the schema.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres repository: DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres repository: open: %w", err)
	}

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres repository: ping: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{createTableStatement, carrierLocationIndexStatement, timestampIndexStatement} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres repository: ensure schema: %w", err)
		}
	}
	return nil
}

// AddBatch inserts measurements inside a single transaction.
func (r *Repository) AddBatch(ctx context.Context, measurements []domain.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres repository: begin: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres repository: prepare: %w", err)
	}

	for _, m := range measurements {
		if _, err := stmt.ExecContext(ctx,
			m.Location, string(m.Carrier), m.Timestamp.UTC(),
			m.SignalStrength, m.SignalQuality, m.SINR, m.DataSpeed,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("postgres repository: insert: %w", err)
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres repository: close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres repository: commit: %w", err)
	}
	return nil
}

// List returns measurements matching the filter. The time-of-day filter is
// applied in process since bucket boundaries live in the domain package.
func (r *Repository) List(ctx context.Context, filter domain.Filter) ([]domain.Measurement, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres repository: list: %w", err)
	}
	defer rows.Close()

	var out []domain.Measurement
	for rows.Next() {
		var m domain.Measurement
		var carrier string
		if err := rows.Scan(&m.Location, &carrier, &m.Timestamp, &m.SignalStrength, &m.SignalQuality, &m.SINR, &m.DataSpeed); err != nil {
			return nil, fmt.Errorf("postgres repository: scan: %w", err)
		}
		m.Carrier = domain.Carrier(carrier)
		if filter.TimeOfDay != "" && domain.TimeOfDayFor(m.Timestamp) != filter.TimeOfDay {
			continue
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres repository: rows: %w", err)
	}
	return out, nil
}

// Count returns the number of stored measurements.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres repository: count: %w", err)
	}
	return count, nil
}

func buildListQuery(filter domain.Filter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Carrier != "" {
		addCondition("carrier = $%d", string(filter.Carrier))
	}
	if filter.Location != "" {
		addCondition("location = $%d", filter.Location)
	}
	if !filter.From.IsZero() {
		addCondition("ts >= $%d", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		addCondition("ts <= $%d", filter.To.UTC())
	}

	query := "SELECT " + selectColumns + " FROM measurements"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts"
	return query, args
}

var _ domain.MeasurementRepository = (*Repository)(nil)
