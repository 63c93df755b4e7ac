// ABOUTME: Tests for rolling baseline estimation and windowing rules.
// ABOUTME: Covers sample floors, invalid filtering, and causal exclusion.
package baseline

import (
	"testing"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

func day(offset int) time.Time {
	base := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func metricsWithHRV(values map[int]float64) []*models.HealthMetrics {
	var out []*models.HealthMetrics
	for offset, hrv := range values {
		m := models.NewHealthMetrics(day(offset))
		m.HRV = hrv
		out = append(out, m)
	}
	return out
}

func TestMeanSimpleAverage(t *testing.T) {
	e := NewEstimator()
	metrics := metricsWithHRV(map[int]float64{-1: 40, -2: 50, -3: 60})

	got := e.Mean(metrics, day(0), 7, 3, HRV, models.ValidHRV)
	if got != 50 {
		t.Errorf("Mean = %v, want 50", got)
	}
}

func TestMeanInsufficientSamples(t *testing.T) {
	e := NewEstimator()
	metrics := metricsWithHRV(map[int]float64{-1: 40, -2: 50})

	if got := e.Mean(metrics, day(0), 7, 3, HRV, models.ValidHRV); got != 0 {
		t.Errorf("Mean = %v, want 0 sentinel for insufficient samples", got)
	}
}

func TestMeanFiltersInvalidReadings(t *testing.T) {
	e := NewEstimator()
	// 5 and 0 are below the HRV validity floor and must not count.
	metrics := metricsWithHRV(map[int]float64{-1: 40, -2: 50, -3: 60, -4: 5, -5: 0})

	got := e.Mean(metrics, day(0), 7, 3, HRV, models.ValidHRV)
	if got != 50 {
		t.Errorf("Mean = %v, want 50 (invalid readings excluded)", got)
	}
}

func TestMeanWindowBounds(t *testing.T) {
	e := NewEstimator()
	metrics := metricsWithHRV(map[int]float64{
		0:  90, // asOf day itself: excluded
		-1: 40,
		-2: 50,
		-7: 60,
		-8: 90, // outside a 7-day window
	})

	got := e.Mean(metrics, day(0), 7, 3, HRV, models.ValidHRV)
	if got != 50 {
		t.Errorf("Mean = %v, want 50 (window is [asOf-7, asOf))", got)
	}
}

func TestMeanExcludesFutureDays(t *testing.T) {
	e := NewEstimator()
	metrics := metricsWithHRV(map[int]float64{-1: 40, -2: 50, -3: 60, 1: 200, 2: 200})

	got := e.Mean(metrics, day(0), 7, 3, HRV, models.ValidHRV)
	if got != 50 {
		t.Errorf("Mean = %v, want 50 (future days must not contribute)", got)
	}
}

func TestRHRBaseline(t *testing.T) {
	e := NewEstimator()
	s := models.Settings{Mode: models.ModeMorning, BaselinePeriodDays: 7}

	var metrics []*models.HealthMetrics
	for i := 1; i <= 4; i++ {
		m := models.NewHealthMetrics(day(-i))
		m.RestingHeartRate = float64(56 + i) // 57..60
		metrics = append(metrics, m)
	}

	got := e.RHRBaseline(metrics, day(0), s)
	if got != 58.5 {
		t.Errorf("RHRBaseline = %v, want 58.5", got)
	}
}

func TestHRVBaselineUsesSettingsFloor(t *testing.T) {
	e := NewEstimator()
	s := models.Settings{Mode: models.ModeMorning, BaselinePeriodDays: 14}

	// 4 valid samples: under the 14-day floor of 5.
	metrics := metricsWithHRV(map[int]float64{-1: 40, -2: 50, -3: 60, -4: 50})
	if got := e.HRVBaseline(metrics, day(0), s); got != 0 {
		t.Errorf("HRVBaseline = %v, want 0 under the sample floor", got)
	}

	metrics = append(metrics, metricsWithHRV(map[int]float64{-5: 50})...)
	if got := e.HRVBaseline(metrics, day(0), s); got != 50 {
		t.Errorf("HRVBaseline = %v, want 50", got)
	}
}

func TestLastComputedAt(t *testing.T) {
	e := NewEstimator()
	if !e.LastComputedAt().IsZero() {
		t.Error("expected zero timestamp before first estimate")
	}
	e.Mean(nil, day(0), 7, 3, HRV, models.ValidHRV)
	if e.LastComputedAt().IsZero() {
		t.Error("expected timestamp after estimate")
	}
}
