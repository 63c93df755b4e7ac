// ABOUTME: Deterministic simulated health source for development and tests.
// ABOUTME: Generates plausible seeded HRV, RHR, and sleep readings.
package source

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Simulated generates deterministic pseudo-readings from a seed. Useful
// for trying the tool without a device integration.
type Simulated struct {
	Seed int64
	Now  func() time.Time
}

// NewSimulated returns a Simulated source with the given seed.
func NewSimulated(seed int64) *Simulated {
	return &Simulated{Seed: seed, Now: time.Now}
}

func (s *Simulated) Name() string { return "simulated" }

// dayRand returns a generator seeded by source seed and day, so the same
// date always produces the same readings.
func (s *Simulated) dayRand(date time.Time) *rand.Rand {
	return rand.New(rand.NewSource(s.Seed ^ date.Unix()))
}

func (s *Simulated) reading(date time.Time) Reading {
	r := s.dayRand(date)
	// Weekly-ish sinusoidal drift plus noise around healthy baselines.
	phase := float64(date.YearDay()) / 7 * 2 * math.Pi
	return Reading{
		Date:         date,
		HRV:          52 + 6*math.Sin(phase) + r.Float64()*8 - 4,
		RHR:          58 - 2*math.Sin(phase) + r.Float64()*6 - 3,
		SleepHours:   7.2 + r.Float64()*1.6 - 0.8,
		SleepQuality: 60 + r.Intn(35),
	}
}

func (s *Simulated) FetchHRV(_ context.Context, start, _ time.Time) (float64, error) {
	return s.reading(models.DateOf(start)).HRV, nil
}

func (s *Simulated) FetchRestingHeartRate(_ context.Context) (float64, error) {
	return s.reading(models.DateOf(s.Now())).RHR, nil
}

func (s *Simulated) FetchSleep(_ context.Context) (Sleep, error) {
	r := s.reading(models.DateOf(s.Now()))
	return Sleep{Hours: r.SleepHours, Quality: r.SleepQuality}, nil
}

func (s *Simulated) ImportHistorical(ctx context.Context, days int, onProgress ProgressFunc) ([]Reading, error) {
	readings := make([]Reading, 0, days)
	today := models.DateOf(s.Now())
	for i := days; i >= 1; i-- {
		if err := ctx.Err(); err != nil {
			return readings, err
		}
		readings = append(readings, s.reading(today.AddDate(0, 0, -i)))
		if onProgress != nil {
			onProgress(float64(days-i+1) / float64(days))
		}
	}
	return readings, nil
}
