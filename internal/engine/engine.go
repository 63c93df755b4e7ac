// ABOUTME: RecalculationCoordinator: live today-processing and per-date recalc.
// ABOUTME: Orchestrates source fetches, baseline estimation, scoring, persistence.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/baseline"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/scoring"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
)

// ScoreUpdateTolerance is the minimum score change that justifies
// rewriting an existing record during live processing. Recomputing the
// same inputs should not churn timestamps.
const ScoreUpdateTolerance = 0.1

// Engine coordinates scoring across the source, estimator, and store.
// Store access is serialized per date; source calls may block and honor
// the passed context.
type Engine struct {
	repo      storage.Repository
	src       source.Source
	estimator *baseline.Estimator
	locks     *dateLocks

	// now is the clock, swappable in tests.
	now func() time.Time
}

// New creates an Engine over the given store and health source.
func New(repo storage.Repository, src source.Source) *Engine {
	return &Engine{
		repo:      repo,
		src:       src,
		estimator: baseline.NewEstimator(),
		locks:     newDateLocks(),
		now:       time.Now,
	}
}

// ProcessToday runs the live pipeline: fetch today's readings, upsert
// metrics, and score the day. An existing score is only overwritten when
// force is set or the new value differs beyond ScoreUpdateTolerance.
func (e *Engine) ProcessToday(ctx context.Context, settings models.Settings, force bool) (*models.ReadinessScore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	now := e.now()

	hrv, err := source.FetchHRVWithFallback(ctx, e.src, settings.Mode, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	// RHR and sleep are best-effort: their absence skips a penalty but
	// never blocks the score.
	rhr, err := e.src.FetchRestingHeartRate(ctx)
	if err != nil {
		rhr = 0
	}
	var sleep source.Sleep
	if s, err := e.src.FetchSleep(ctx); err == nil {
		sleep = s
	}

	unlock := e.locks.lock(now)
	defer unlock()

	m := models.NewHealthMetrics(now)
	m.HRV = hrv
	m.RestingHeartRate = rhr
	m.SleepHours = sleep.Hours
	m.SleepQuality = sleep.Quality

	stored, err := e.repo.UpsertMetrics(m)
	if err != nil {
		return nil, fmt.Errorf("persist metrics: %w", err)
	}

	return e.scoreLocked(stored, settings, force)
}

// Recalculate recomputes one date's score from stored metrics alone and
// always overwrites the existing record. It never touches the source.
func (e *Engine) Recalculate(ctx context.Context, date time.Time, settings models.Settings) (*models.ReadinessScore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(date)
	defer unlock()

	m, err := e.repo.GetMetrics(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", models.DateKey(date), ErrHistoricalDataMissing)
		}
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	if !m.HasValidHRV() {
		return nil, fmt.Errorf("%s: %w", models.DateKey(date), ErrHistoricalDataIncomplete)
	}

	return e.scoreLocked(m, settings, true)
}

// scoreLocked computes and persists the score for a day's metrics. The
// caller must hold the date lock.
func (e *Engine) scoreLocked(m *models.HealthMetrics, settings models.Settings, force bool) (*models.ReadinessScore, error) {
	history, err := e.historyFor(m.Date, settings)
	if err != nil {
		return nil, err
	}
	return e.persistScore(m, history, settings, force)
}

// historyFor loads the metrics that can feed a date's baseline: everything
// stored within the lookback window before that date.
func (e *Engine) historyFor(date time.Time, settings models.Settings) ([]*models.HealthMetrics, error) {
	// Range is measured from today; extend it to cover windows that end
	// at a historical date.
	daysBack := settings.BaselinePeriodDays + int(models.DateOf(e.now()).Sub(models.DateOf(date))/(24*time.Hour))
	history, err := e.repo.GetMetricsRange(daysBack)
	if err != nil {
		return nil, fmt.Errorf("load baseline window: %w", err)
	}
	return history, nil
}

// persistScore runs the calculator over a day's metrics and upserts the
// result, honoring the live-update tolerance unless forced.
func (e *Engine) persistScore(m *models.HealthMetrics, history []*models.HealthMetrics, settings models.Settings, force bool) (*models.ReadinessScore, error) {
	hrvBaseline := e.estimator.HRVBaseline(history, m.Date, settings)
	rhrBaseline := e.estimator.RHRBaseline(history, m.Date, settings)

	result := scoring.Calculate(scoring.Input{
		HRV:         m.HRV,
		HRVBaseline: hrvBaseline,
		RHR:         m.RestingHeartRate,
		RHRBaseline: rhrBaseline,
		SleepHours:  m.SleepHours,
	}, settings)

	// No baseline yet: surface the (0, unknown) sentinel without creating
	// a record. Scores exist only once one can actually be computed.
	if result.Category == models.CategoryUnknown {
		s := models.NewReadinessScore(m.Date)
		s.Category = models.CategoryUnknown
		s.ReadinessMode = string(settings.Mode)
		s.BaselinePeriodDays = settings.BaselinePeriodDays
		return s, nil
	}

	existing, err := e.repo.GetScore(m.Date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load existing score: %w", err)
	}
	if existing != nil && !force && withinTolerance(existing.Score, result.Score) {
		return existing, nil
	}

	s := models.NewReadinessScore(m.Date)
	if existing != nil {
		s.ID = existing.ID
	}
	s.Score = result.Score
	s.Category = result.Category
	s.HRVBaseline = hrvBaseline
	s.HRVDeviationPercent = result.DeviationPercent
	s.RHRAdjustment = result.RHRAdjustment
	s.SleepAdjustment = result.SleepAdjustment
	s.ReadinessMode = string(settings.Mode)
	s.BaselinePeriodDays = settings.BaselinePeriodDays

	stored, err := e.repo.UpsertScore(s)
	if err != nil {
		return nil, fmt.Errorf("persist score: %w", err)
	}
	return stored, nil
}

func withinTolerance(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= ScoreUpdateTolerance
}

// LastBaselineComputedAt exposes the estimator's observability timestamp.
func (e *Engine) LastBaselineComputedAt() time.Time {
	return e.estimator.LastComputedAt()
}
