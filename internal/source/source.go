// ABOUTME: HealthSource interface for device or cloud physiological readings.
// ABOUTME: Defines the readiness mode time-window policy and fallback fetch.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// ErrUnavailable is returned when a source cannot supply a reading.
var ErrUnavailable = errors.New("health source unavailable")

// Reading is one day's raw readings from a source. Zero fields mean the
// source had no data for that metric.
type Reading struct {
	Date         time.Time `json:"date"`
	HRV          float64   `json:"hrv,omitempty"`
	RHR          float64   `json:"rhr,omitempty"`
	SleepHours   float64   `json:"sleep_hours,omitempty"`
	SleepQuality int       `json:"sleep_quality,omitempty"`
}

// Sleep is a sleep duration with its quality score.
type Sleep struct {
	Hours   float64
	Quality int
}

// ProgressFunc reports historical import progress as a fraction in [0,1].
type ProgressFunc func(fraction float64)

// Source supplies time-windowed aggregate physiological readings.
// Calls may be slow (device or cloud round-trip) and take a context.
type Source interface {
	// FetchHRV returns the aggregate HRV (ms) over [start, end).
	FetchHRV(ctx context.Context, start, end time.Time) (float64, error)
	// FetchRestingHeartRate returns today's resting heart rate (bpm).
	FetchRestingHeartRate(ctx context.Context) (float64, error)
	// FetchSleep returns last night's sleep duration and quality.
	FetchSleep(ctx context.Context) (Sleep, error)
	// ImportHistorical returns up to days of daily readings, any order.
	ImportHistorical(ctx context.Context, days int, onProgress ProgressFunc) ([]Reading, error)
	// Name identifies the source for logs.
	Name() string
}

// fallbackWindow is the fixed window retried when the mode window has no
// data.
const fallbackWindow = 24 * time.Hour

// WindowForMode returns the HRV sampling window for a readiness mode.
func WindowForMode(mode models.Mode, now time.Time) (start, end time.Time) {
	switch mode {
	case models.ModeRolling24h:
		return now.Add(-24 * time.Hour), now
	default: // morning
		day := models.DateOf(now)
		return day, day.Add(12 * time.Hour)
	}
}

// FetchHRVWithFallback tries the mode window first, then retries once with
// a fixed 24-hour window. A second failure means no data is available for
// this cycle.
func FetchHRVWithFallback(ctx context.Context, src Source, mode models.Mode, now time.Time) (float64, error) {
	start, end := WindowForMode(mode, now)
	hrv, err := src.FetchHRV(ctx, start, end)
	if err == nil && models.ValidHRV(hrv) {
		return hrv, nil
	}

	hrv, err = src.FetchHRV(ctx, now.Add(-fallbackWindow), now)
	if err != nil {
		return 0, err
	}
	if !models.ValidHRV(hrv) {
		return 0, ErrUnavailable
	}
	return hrv, nil
}
