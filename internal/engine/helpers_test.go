// ABOUTME: Test fakes for the engine: in-memory repository and fake source.
// ABOUTME: The memory repo honors the date-keyed upsert contract.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
)

// memoryRepo is an in-memory Repository keyed by date string.
type memoryRepo struct {
	mu      sync.Mutex
	metrics map[string]*models.HealthMetrics
	scores  map[string]*models.ReadinessScore

	failUpsertScore bool
	scoreWrites     int
	now             func() time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		metrics: make(map[string]*models.HealthMetrics),
		scores:  make(map[string]*models.ReadinessScore),
		now:     time.Now,
	}
}

func (r *memoryRepo) UpsertMetrics(m *models.HealthMetrics) (*models.HealthMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.DateKey(m.Date)
	if existing, ok := r.metrics[key]; ok {
		existing.HRV = m.HRV
		existing.RestingHeartRate = m.RestingHeartRate
		existing.SleepHours = m.SleepHours
		existing.SleepQuality = m.SleepQuality
		existing.UpdatedAt = time.Now()
		cp := *existing
		return &cp, nil
	}
	cp := *m
	r.metrics[key] = &cp
	out := cp
	return &out, nil
}

func (r *memoryRepo) GetMetrics(date time.Time) (*models.HealthMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metrics[models.DateKey(date)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memoryRepo) GetMetricsRange(days int) ([]*models.HealthMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := models.DateOf(r.now()).AddDate(0, 0, -days)
	var out []*models.HealthMetrics
	for _, m := range r.metrics {
		if m.Date.Before(cutoff) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryRepo) DeleteMetrics(date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.DateKey(date)
	if _, ok := r.metrics[key]; !ok {
		return storage.ErrNotFound
	}
	delete(r.metrics, key)
	delete(r.scores, key)
	return nil
}

func (r *memoryRepo) UpsertScore(s *models.ReadinessScore) (*models.ReadinessScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsertScore {
		return nil, fmt.Errorf("disk full")
	}
	key := models.DateKey(s.Date)
	if _, ok := r.metrics[key]; !ok {
		return nil, fmt.Errorf("no metrics for %s", key)
	}
	r.scoreWrites++
	cp := *s
	r.scores[key] = &cp
	out := cp
	return &out, nil
}

func (r *memoryRepo) GetScore(date time.Time) (*models.ReadinessScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[models.DateKey(date)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) GetScoreRange(days int) ([]*models.ReadinessScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := models.DateOf(r.now()).AddDate(0, 0, -days)
	var out []*models.ReadinessScore
	for _, s := range r.scores {
		if s.Date.Before(cutoff) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryRepo) GetAllData() (*storage.ExportData, error) {
	metrics, _ := r.GetMetricsRange(3650)
	scores, _ := r.GetScoreRange(3650)
	return &storage.ExportData{Metrics: metrics, Scores: scores}, nil
}

func (r *memoryRepo) ImportData(data *storage.ExportData) error {
	for _, m := range data.Metrics {
		if _, err := r.UpsertMetrics(m); err != nil {
			return err
		}
	}
	for _, s := range data.Scores {
		if _, err := r.UpsertScore(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryRepo) Close() error { return nil }

// fakeSource scripts HRV fetches and historical readings.
type fakeSource struct {
	hrv       float64
	hrvErr    error
	hrvCalls  int
	failFirst bool

	rhr      float64
	rhrErr   error
	sleep    source.Sleep
	sleepErr error

	history []source.Reading
}

func (f *fakeSource) FetchHRV(_ context.Context, start, end time.Time) (float64, error) {
	f.hrvCalls++
	if f.failFirst && f.hrvCalls == 1 {
		return 0, source.ErrUnavailable
	}
	return f.hrv, f.hrvErr
}

func (f *fakeSource) FetchRestingHeartRate(context.Context) (float64, error) {
	return f.rhr, f.rhrErr
}

func (f *fakeSource) FetchSleep(context.Context) (source.Sleep, error) {
	return f.sleep, f.sleepErr
}

func (f *fakeSource) ImportHistorical(ctx context.Context, days int, onProgress source.ProgressFunc) ([]source.Reading, error) {
	if onProgress != nil {
		onProgress(1)
	}
	return f.history, nil
}

func (f *fakeSource) Name() string { return "fake" }
