// ABOUTME: ReadinessScore date-keyed operations for SQLite storage.
// ABOUTME: One score per date, updated in place on recalculation.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/readiness/internal/models"
)

// UpsertScore inserts or updates the score record for a date. The metrics
// record for that date must already exist (scores are owned by metrics).
func (d *DB) UpsertScore(s *models.ReadinessScore) (*models.ReadinessScore, error) {
	query := `
		INSERT INTO readiness_scores (id, date, score, category, hrv_baseline, hrv_deviation_percent,
			rhr_adjustment, sleep_adjustment, readiness_mode, baseline_period_days, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			score = excluded.score,
			category = excluded.category,
			hrv_baseline = excluded.hrv_baseline,
			hrv_deviation_percent = excluded.hrv_deviation_percent,
			rhr_adjustment = excluded.rhr_adjustment,
			sleep_adjustment = excluded.sleep_adjustment,
			readiness_mode = excluded.readiness_mode,
			baseline_period_days = excluded.baseline_period_days,
			calculated_at = excluded.calculated_at
	`
	_, err := d.db.Exec(query,
		s.ID.String(),
		models.DateKey(s.Date),
		s.Score,
		string(s.Category),
		s.HRVBaseline,
		s.HRVDeviationPercent,
		s.RHRAdjustment,
		s.SleepAdjustment,
		s.ReadinessMode,
		s.BaselinePeriodDays,
		s.CalculatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}

	return d.GetScore(s.Date)
}

// GetScore retrieves the score record for a calendar date.
// Returns ErrNotFound when no record exists.
func (d *DB) GetScore(date time.Time) (*models.ReadinessScore, error) {
	query := `
		SELECT id, date, score, category, hrv_baseline, hrv_deviation_percent,
			rhr_adjustment, sleep_adjustment, readiness_mode, baseline_period_days, calculated_at
		FROM readiness_scores
		WHERE date = ?
	`
	s, err := scanScoreFrom(d.db.QueryRow(query, models.DateKey(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetScoreRange retrieves scores for the past N days, most recent first.
func (d *DB) GetScoreRange(days int) ([]*models.ReadinessScore, error) {
	cutoff := models.DateOf(time.Now()).AddDate(0, 0, -days)
	query := `
		SELECT id, date, score, category, hrv_baseline, hrv_deviation_percent,
			rhr_adjustment, sleep_adjustment, readiness_mode, baseline_period_days, calculated_at
		FROM readiness_scores
		WHERE date >= ?
		ORDER BY date DESC
	`
	rows, err := d.db.Query(query, models.DateKey(cutoff))
	if err != nil {
		return nil, fmt.Errorf("score range: %w", err)
	}
	defer rows.Close()

	var out []*models.ReadinessScore
	for rows.Next() {
		s, err := scanScoreFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanScoreFrom(s rowScanner) (*models.ReadinessScore, error) {
	var r models.ReadinessScore
	var idStr, date, category, calculatedAt string

	err := s.Scan(&idStr, &date, &r.Score, &category, &r.HRVBaseline, &r.HRVDeviationPercent,
		&r.RHRAdjustment, &r.SleepAdjustment, &r.ReadinessMode, &r.BaselinePeriodDays, &calculatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan score: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.Date, _ = models.ParseDate(date)
	r.Category = models.Category(category)
	r.CalculatedAt, _ = time.Parse(time.RFC3339, calculatedAt)

	return &r, nil
}
