package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"weatherstation-server/internal/modules/metrics/types"
)

//go:embed sql/get-readings.sql
var getReadingsSQL string

//go:embed sql/get-latest-reading.sql
var getLatestReadingSQL string

// MetricsRepository is the read contract over the time-series store.
// GetReadings returns rows in [from, to) ascending by time; GetLatestReading
// returns the newest row across all time, or nil when the store is empty.
type MetricsRepository interface {
	GetReadings(from time.Time, to time.Time) ([]types.Reading, error)
	GetLatestReading() (*types.Reading, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) MetricsRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetReadings(from time.Time, to time.Time) ([]types.Reading, error) {
	fromStr := from.UTC().Format(time.RFC3339Nano)
	toStr := to.UTC().Format(time.RFC3339Nano)
	rows, err := r.db.Query(getReadingsSQL, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close readings rows", "error", err)
		}
	}()
	return scanReadings(rows)
}

func (r *repositoryImpl) GetLatestReading() (*types.Reading, error) {
	rows, err := r.db.Query(getLatestReadingSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close latest reading rows", "error", err)
		}
	}()
	out, err := scanReadings(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func scanReadings(rows *sql.Rows) ([]types.Reading, error) {
	var out []types.Reading
	for rows.Next() {
		var (
			ts       string
			url      sql.NullString
			altitude sql.NullFloat64
			soilPct  sql.NullFloat64
			soilRaw  sql.NullFloat64
			pressure sql.NullFloat64
			temp     sql.NullFloat64
			humidity sql.NullFloat64
		)
		if err := rows.Scan(&ts, &url, &altitude, &soilPct, &soilRaw, &pressure, &temp, &humidity); err != nil {
			return nil, err
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Reading{
			Time:                t,
			SourceURL:           nullString(url),
			AltitudeMeters:      nullFloat(altitude),
			SoilMoisturePercent: nullFloat(soilPct),
			SoilMoistureRaw:     nullFloat(soilRaw),
			PressureHpa:         nullFloat(pressure),
			TemperatureC:        nullFloat(temp),
			RelativeHumidity:    nullFloat(humidity),
		})
	}
	return out, rows.Err()
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err == nil {
		return t, nil
	}
	t, err2 := time.Parse(time.RFC3339, ts)
	if err2 != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: RFC3339Nano: %w; RFC3339: %w", ts, err, err2)
	}
	return t, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
