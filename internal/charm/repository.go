// ABOUTME: Date-keyed repository over Charm KV for metrics and scores.
// ABOUTME: Mirrors the SQLite backend contract, including score ownership.
package charm

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
)

// Repository implements storage.Repository over the Charm KV store.
// Records are keyed by calendar date, one metric and at most one score
// per day, with values stored as JSON.
type Repository struct {
	client *Client
}

// NewRepository opens the Charm-backed repository.
func NewRepository() (*Repository, error) {
	c, err := GetClient()
	if err != nil {
		return nil, fmt.Errorf("init charm client: %w", err)
	}
	return &Repository{client: c}, nil
}

func metricKey(date time.Time) string {
	return MetricPrefix + models.DateKey(date)
}

func scoreKey(date time.Time) string {
	return ScorePrefix + models.DateKey(date)
}

// UpsertMetrics inserts or updates the metrics record for a date.
// On update, the stored record keeps its original ID and created_at.
func (r *Repository) UpsertMetrics(m *models.HealthMetrics) (*models.HealthMetrics, error) {
	stored := *m
	stored.UpdatedAt = time.Now()

	if existing, err := r.GetMetrics(m.Date); err == nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("upsert metrics: %w", err)
	}

	data, err := marshalJSON(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}
	if err := r.client.set(metricKey(m.Date), data); err != nil {
		return nil, fmt.Errorf("upsert metrics: %w", err)
	}
	return &stored, nil
}

// GetMetrics retrieves the metrics record for a calendar date.
// Returns storage.ErrNotFound when no record exists.
func (r *Repository) GetMetrics(date time.Time) (*models.HealthMetrics, error) {
	data, ok, err := r.client.get(metricKey(date))
	if err != nil {
		return nil, fmt.Errorf("get metrics: %w", err)
	}
	if !ok {
		return nil, storage.ErrNotFound
	}

	m, err := unmarshalJSON[models.HealthMetrics](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	return m, nil
}

// GetMetricsRange retrieves metrics for the past N days, most recent first.
func (r *Repository) GetMetricsRange(days int) ([]*models.HealthMetrics, error) {
	cutoff := models.DateOf(time.Now()).AddDate(0, 0, -days)
	allData, err := r.client.listByPrefix(MetricPrefix, models.DateKey(cutoff))
	if err != nil {
		return nil, fmt.Errorf("metrics range: %w", err)
	}

	var out []*models.HealthMetrics
	for _, data := range allData {
		m, err := unmarshalJSON[models.HealthMetrics](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if m.Date.Before(cutoff) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// DeleteMetrics removes a date's metrics along with its score, matching
// the cascade behavior of the SQLite backend.
func (r *Repository) DeleteMetrics(date time.Time) error {
	found, err := r.client.delete(metricKey(date))
	if err != nil {
		return fmt.Errorf("delete metrics: %w", err)
	}
	if !found {
		return fmt.Errorf("delete metrics %s: %w", models.DateKey(date), storage.ErrNotFound)
	}

	if _, err := r.client.delete(scoreKey(date)); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}

// UpsertScore inserts or updates the readiness score for a date.
// A score requires a metrics record for the same date.
func (r *Repository) UpsertScore(s *models.ReadinessScore) (*models.ReadinessScore, error) {
	if _, err := r.GetMetrics(s.Date); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("upsert score %s: no metrics for date", models.DateKey(s.Date))
		}
		return nil, fmt.Errorf("upsert score: %w", err)
	}

	stored := *s
	if existing, err := r.GetScore(s.Date); err == nil {
		stored.ID = existing.ID
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("upsert score: %w", err)
	}

	data, err := marshalJSON(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal score: %w", err)
	}
	if err := r.client.set(scoreKey(s.Date), data); err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}
	return &stored, nil
}

// GetScore retrieves the readiness score for a calendar date.
func (r *Repository) GetScore(date time.Time) (*models.ReadinessScore, error) {
	data, ok, err := r.client.get(scoreKey(date))
	if err != nil {
		return nil, fmt.Errorf("get score: %w", err)
	}
	if !ok {
		return nil, storage.ErrNotFound
	}

	s, err := unmarshalJSON[models.ReadinessScore](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal score: %w", err)
	}
	return s, nil
}

// GetScoreRange retrieves scores for the past N days, most recent first.
func (r *Repository) GetScoreRange(days int) ([]*models.ReadinessScore, error) {
	cutoff := models.DateOf(time.Now()).AddDate(0, 0, -days)
	allData, err := r.client.listByPrefix(ScorePrefix, models.DateKey(cutoff))
	if err != nil {
		return nil, fmt.Errorf("score range: %w", err)
	}

	var out []*models.ReadinessScore
	for _, data := range allData {
		s, err := unmarshalJSON[models.ReadinessScore](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if s.Date.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// GetAllData retrieves all data for export, oldest first.
func (r *Repository) GetAllData() (*storage.ExportData, error) {
	metrics, err := r.GetMetricsRange(3650)
	if err != nil {
		return nil, fmt.Errorf("export metrics: %w", err)
	}
	scores, err := r.GetScoreRange(3650)
	if err != nil {
		return nil, fmt.Errorf("export scores: %w", err)
	}

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date.Before(metrics[j].Date) })
	sort.Slice(scores, func(i, j int) bool { return scores[i].Date.Before(scores[j].Date) })

	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "readiness",
		Metrics:    metrics,
		Scores:     scores,
	}, nil
}

// ImportData imports data from an export file. Metrics land before
// scores so score ownership is satisfied.
func (r *Repository) ImportData(data *storage.ExportData) error {
	for _, m := range data.Metrics {
		if _, err := r.UpsertMetrics(m); err != nil {
			return fmt.Errorf("import metrics %s: %w", models.DateKey(m.Date), err)
		}
	}
	for _, s := range data.Scores {
		if _, err := r.UpsertScore(s); err != nil {
			return fmt.Errorf("import score %s: %w", models.DateKey(s.Date), err)
		}
	}
	return nil
}

// Close closes the underlying KV connection.
func (r *Repository) Close() error {
	return r.client.Close()
}
