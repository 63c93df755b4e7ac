// ABOUTME: Pure readiness score calculator: deviation bands plus penalties.
// ABOUTME: Deterministic for fixed inputs; no store or clock access.
package scoring

import (
	"math"

	"github.com/harperreed/readiness/internal/models"
)

// Clinical constants. These come from the original scoring model and carry
// meaning; changing them changes what a score says about recovery.
const (
	// RHRElevationThreshold is how far (bpm) current resting heart rate
	// must exceed its baseline before the penalty applies.
	RHRElevationThreshold = 5.0
	// RHRPenalty is applied when resting heart rate is elevated.
	RHRPenalty = -10.0
	// SleepDeficitHours is the short-sleep cutoff.
	SleepDeficitHours = 6.0
	// SleepPenalty is applied when sleep fell below the cutoff.
	SleepPenalty = -15.0
)

// Input carries the current readings and baselines for one day.
// A zero HRVBaseline means "no baseline available" and yields the
// (0, Unknown) sentinel result.
type Input struct {
	HRV         float64
	HRVBaseline float64
	RHR         float64
	RHRBaseline float64
	SleepHours  float64
}

// Result is the full output of one readiness calculation.
type Result struct {
	Score            float64
	Category         models.Category
	DeviationPercent float64
	RHRAdjustment    float64
	SleepAdjustment  float64
}

// Calculate maps current readings against personal baselines to a
// readiness score in [0,100] with its category and contributing factors.
func Calculate(in Input, s models.Settings) Result {
	if in.HRVBaseline <= 0 {
		return Result{Category: models.CategoryUnknown}
	}

	deviation := (in.HRV - in.HRVBaseline) / in.HRVBaseline * 100

	base := baseScore(deviation)
	rhrAdj := rhrAdjustment(in, s)
	sleepAdj := sleepAdjustment(in, s)

	score := clamp(base+rhrAdj+sleepAdj, 0, 100)

	return Result{
		Score:            score,
		Category:         models.CategoryForScore(score),
		DeviationPercent: deviation,
		RHRAdjustment:    rhrAdj,
		SleepAdjustment:  sleepAdj,
	}
}

// baseScore maps an HRV deviation percentage to a base score through six
// ordered bands. Suppressed HRV (negative deviation) drops the score
// steeply; elevated HRV lifts it modestly above the near-baseline band.
func baseScore(deviation float64) float64 {
	switch {
	case deviation <= -10:
		severity := math.Min(math.Abs(deviation)-10, 20) / 20
		return 29 - severity*29
	case deviation <= -7:
		position := (math.Abs(deviation) - 7) / 3
		return 49 - position*19
	case deviation <= -3:
		position := (math.Abs(deviation) - 3) / 4
		return 79 - position*29
	case deviation <= 3:
		position := math.Abs(deviation) / 3
		return 100 - position*20
	case deviation < 10:
		position := (deviation - 3) / 7
		return 80 + position*10
	default:
		position := math.Min((deviation-10)/10, 1)
		return 90 + position*10
	}
}

// rhrAdjustment returns the elevated-resting-heart-rate penalty, or 0.
// A missing RHR baseline or implausible current reading never blocks the
// overall score; the penalty is simply skipped.
func rhrAdjustment(in Input, s models.Settings) float64 {
	if !s.UseRHRAdjustment {
		return 0
	}
	if in.RHRBaseline <= 0 || !models.ValidRHR(in.RHR) {
		return 0
	}
	if in.RHR > in.RHRBaseline+RHRElevationThreshold {
		return RHRPenalty
	}
	return 0
}

// sleepAdjustment returns the short-sleep penalty, or 0.
func sleepAdjustment(in Input, s models.Settings) float64 {
	if !s.UseSleepAdjustment {
		return 0
	}
	if in.SleepHours <= 0 {
		return 0
	}
	if in.SleepHours < SleepDeficitHours {
		return SleepPenalty
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
