// ABOUTME: Rolling-average baseline estimation over a lookback window.
// ABOUTME: Returns 0 when fewer than the minimum valid samples exist.
package baseline

import (
	"sync"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Accessor selects one reading from a metrics record.
type Accessor func(*models.HealthMetrics) float64

// Validator reports whether a reading is usable for baseline estimation.
type Validator func(float64) bool

// Per-metric accessors and validators.
var (
	HRV        Accessor = func(m *models.HealthMetrics) float64 { return m.HRV }
	RHR        Accessor = func(m *models.HealthMetrics) float64 { return m.RestingHeartRate }
	SleepHours Accessor = func(m *models.HealthMetrics) float64 { return m.SleepHours }
)

// Estimator computes personal rolling baselines from stored metrics.
// It is stateless apart from a last-computed timestamp kept for
// observability; safe for concurrent use.
type Estimator struct {
	mu             sync.Mutex
	lastComputedAt time.Time
}

// NewEstimator returns a ready Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Mean averages the valid readings among metrics whose date falls in
// [asOf − periodDays, asOf). Records on or after asOf never contribute, so
// a day's own reading cannot influence its baseline. Returns 0 when fewer
// than minSamples valid readings exist; callers must treat 0 as "no
// baseline", not as a true zero.
func (e *Estimator) Mean(metrics []*models.HealthMetrics, asOf time.Time, periodDays, minSamples int, access Accessor, valid Validator) float64 {
	e.touch()

	day := models.DateOf(asOf)
	start := day.AddDate(0, 0, -periodDays)

	var sum float64
	var count int
	for _, m := range metrics {
		d := models.DateOf(m.Date)
		if d.Before(start) || !d.Before(day) {
			continue
		}
		v := access(m)
		if !valid(v) {
			continue
		}
		sum += v
		count++
	}

	if count < minSamples {
		return 0
	}
	return sum / float64(count)
}

// HRVBaseline averages valid HRV readings for the settings' window.
func (e *Estimator) HRVBaseline(metrics []*models.HealthMetrics, asOf time.Time, s models.Settings) float64 {
	return e.Mean(metrics, asOf, s.BaselinePeriodDays, s.MinimumSamplesForBaseline(), HRV, models.ValidHRV)
}

// RHRBaseline averages valid resting heart rate readings for the window.
func (e *Estimator) RHRBaseline(metrics []*models.HealthMetrics, asOf time.Time, s models.Settings) float64 {
	return e.Mean(metrics, asOf, s.BaselinePeriodDays, s.MinimumSamplesForBaseline(), RHR, models.ValidRHR)
}

// LastComputedAt reports when a baseline was last estimated.
func (e *Estimator) LastComputedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastComputedAt
}

func (e *Estimator) touch() {
	e.mu.Lock()
	e.lastComputedAt = time.Now()
	e.mu.Unlock()
}
