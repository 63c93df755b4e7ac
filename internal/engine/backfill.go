// ABOUTME: Historical backfill: import raw readings and walk-forward score.
// ABOUTME: Baselines use strictly preceding days only, never the day's own.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/source"
)

// BackfillDays is how far back the first-run bootstrap imports.
const BackfillDays = 90

// BackfillProgress reports backfill progress: a monotonically increasing
// fraction in [0,1] and a human-readable stage label.
type BackfillProgress func(fraction float64, stage string)

// BackfillResult summarizes what a backfill run did.
type BackfillResult struct {
	Imported   int  // days of metrics written
	Scored     int  // days that received a score
	Skipped    int  // imported days left unscored for lack of preceding history
	SkippedRun bool // sufficient history already stored; nothing was done
}

// Backfill bootstraps score history for new installs. When enough recent
// valid-HRV days already exist it does nothing. Otherwise it imports up to
// BackfillDays of readings, keeps days with valid HRV, then walks the days
// chronologically scoring only those with enough strictly preceding
// history. Individual bad days are logged and skipped; cancellation
// between dates leaves completed work intact and a rerun resumes via the
// upsert contract.
func (e *Engine) Backfill(ctx context.Context, settings models.Settings, progress BackfillProgress) (*BackfillResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	report := func(fraction float64, stage string) {
		if progress != nil {
			progress(fraction, stage)
		}
	}
	minSamples := settings.MinimumSamplesForBaseline()

	report(0, "checking existing data")
	existing, err := e.repo.GetMetricsRange(BackfillDays)
	if err != nil {
		return nil, fmt.Errorf("check existing data: %w", err)
	}
	validExisting := 0
	for _, m := range existing {
		if m.HasValidHRV() {
			validExisting++
		}
	}
	if validExisting >= minSamples {
		log.Debug("backfill skipped", "valid_days", validExisting, "min_samples", minSamples)
		report(1, "sufficient history already present")
		return &BackfillResult{SkippedRun: true}, nil
	}

	report(0.05, "importing historical readings")
	readings, err := e.src.ImportHistorical(ctx, BackfillDays, func(f float64) {
		// Import spans the 5%..50% stretch of overall progress.
		report(0.05+f*0.45, "importing historical readings")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	result := &BackfillResult{}
	days, err := e.importReadings(ctx, readings, result)
	if err != nil {
		return result, err
	}

	report(0.5, "computing historical scores")
	if err := e.scoreChronologically(ctx, days, settings, result, report); err != nil {
		return result, err
	}

	report(1, "backfill complete")
	log.Info("backfill finished", "imported", result.Imported, "scored", result.Scored)
	return result, nil
}

// importReadings upserts metrics for every valid-HRV reading and returns
// the stored days. Per-date failures are logged, not fatal; cancellation
// stops the walk and surfaces so the caller never reports a clean finish.
func (e *Engine) importReadings(ctx context.Context, readings []source.Reading, result *BackfillResult) ([]*models.HealthMetrics, error) {
	var days []*models.HealthMetrics
	for _, r := range readings {
		if err := ctx.Err(); err != nil {
			return days, err
		}
		if !models.ValidHRV(r.HRV) {
			continue
		}

		m := models.NewHealthMetrics(r.Date)
		m.HRV = r.HRV
		m.RestingHeartRate = r.RHR
		m.SleepHours = r.SleepHours
		m.SleepQuality = r.SleepQuality

		unlock := e.locks.lock(r.Date)
		stored, err := e.repo.UpsertMetrics(m)
		unlock()
		if err != nil {
			log.Warn("backfill: skipping day", "date", models.DateKey(r.Date), "err", err)
			continue
		}
		days = append(days, stored)
		result.Imported++
	}
	return days, nil
}

// scoreChronologically walks imported days oldest first, scoring each day
// whose baseline window holds at least minSamples strictly earlier valid
// days. Earlier days receive no score.
func (e *Engine) scoreChronologically(ctx context.Context, days []*models.HealthMetrics, settings models.Settings, result *BackfillResult, report BackfillProgress) error {
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	minSamples := settings.MinimumSamplesForBaseline()

	for i, day := range days {
		if err := ctx.Err(); err != nil {
			return err
		}

		if countPreceding(days, day.Date, settings.BaselinePeriodDays) < minSamples {
			result.Skipped++
			continue
		}

		unlock := e.locks.lock(day.Date)
		_, err := e.persistScore(day, days, settings, true)
		unlock()
		if err != nil {
			log.Warn("backfill: scoring failed", "date", models.DateKey(day.Date), "err", err)
			continue
		}
		result.Scored++
		report(0.5+float64(i+1)/float64(len(days))*0.5, "computing historical scores")
	}
	return nil
}

// countPreceding counts valid-HRV days strictly before date and within its
// lookback window.
func countPreceding(days []*models.HealthMetrics, date time.Time, periodDays int) int {
	day := models.DateOf(date)
	start := day.AddDate(0, 0, -periodDays)
	n := 0
	for _, m := range days {
		d := models.DateOf(m.Date)
		if d.Before(start) || !d.Before(day) {
			continue
		}
		if m.HasValidHRV() {
			n++
		}
	}
	return n
}
