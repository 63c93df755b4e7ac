// ABOUTME: HealthMetrics date-keyed operations for SQLite storage.
// ABOUTME: Upserts preserve the original row ID so score ownership survives.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/readiness/internal/models"
)

// UpsertMetrics inserts or updates the metrics record for a date.
// On conflict, readings are replaced and updated_at is refreshed; the row
// ID and created_at remain those of the original record.
func (d *DB) UpsertMetrics(m *models.HealthMetrics) (*models.HealthMetrics, error) {
	query := `
		INSERT INTO health_metrics (id, date, hrv, resting_heart_rate, sleep_hours, sleep_quality, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			hrv = excluded.hrv,
			resting_heart_rate = excluded.resting_heart_rate,
			sleep_hours = excluded.sleep_hours,
			sleep_quality = excluded.sleep_quality,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	_, err := d.db.Exec(query,
		m.ID.String(),
		models.DateKey(m.Date),
		m.HRV,
		m.RestingHeartRate,
		m.SleepHours,
		m.SleepQuality,
		m.CreatedAt.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert metrics: %w", err)
	}

	return d.GetMetrics(m.Date)
}

// GetMetrics retrieves the metrics record for a calendar date.
// Returns ErrNotFound when no record exists.
func (d *DB) GetMetrics(date time.Time) (*models.HealthMetrics, error) {
	query := `
		SELECT id, date, hrv, resting_heart_rate, sleep_hours, sleep_quality, created_at, updated_at
		FROM health_metrics
		WHERE date = ?
	`
	return scanMetrics(d.db.QueryRow(query, models.DateKey(date)))
}

// GetMetricsRange retrieves metrics for the past N days, most recent first.
func (d *DB) GetMetricsRange(days int) ([]*models.HealthMetrics, error) {
	cutoff := models.DateOf(time.Now()).AddDate(0, 0, -days)
	query := `
		SELECT id, date, hrv, resting_heart_rate, sleep_hours, sleep_quality, created_at, updated_at
		FROM health_metrics
		WHERE date >= ?
		ORDER BY date DESC
	`
	rows, err := d.db.Query(query, models.DateKey(cutoff))
	if err != nil {
		return nil, fmt.Errorf("metrics range: %w", err)
	}
	defer rows.Close()

	var out []*models.HealthMetrics
	for rows.Next() {
		m, err := scanMetricsRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMetrics removes a date's metrics; the owned score cascades away.
func (d *DB) DeleteMetrics(date time.Time) error {
	result, err := d.db.Exec("DELETE FROM health_metrics WHERE date = ?", models.DateKey(date))
	if err != nil {
		return fmt.Errorf("delete metrics: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete metrics: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete metrics %s: %w", models.DateKey(date), ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetrics(row *sql.Row) (*models.HealthMetrics, error) {
	m, err := scanMetricsFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMetricsRow(rows *sql.Rows) (*models.HealthMetrics, error) {
	return scanMetricsFrom(rows)
}

func scanMetricsFrom(s rowScanner) (*models.HealthMetrics, error) {
	var m models.HealthMetrics
	var idStr, date, createdAt, updatedAt string

	err := s.Scan(&idStr, &date, &m.HRV, &m.RestingHeartRate, &m.SleepHours, &m.SleepQuality, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan metrics: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.Date, _ = models.ParseDate(date)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &m, nil
}
