// ABOUTME: ReadinessScore model and Category enum derived from score values.
// ABOUTME: One score per calendar date, owned 1:1 by that day's HealthMetrics.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a readiness score into a fixed band.
type Category string

const (
	CategoryUnknown  Category = "unknown"
	CategoryFatigue  Category = "fatigue"
	CategoryLow      Category = "low"
	CategoryModerate Category = "moderate"
	CategoryOptimal  Category = "optimal"
)

// Category score bands (inclusive).
const (
	OptimalMin  = 80.0
	ModerateMin = 50.0
	LowMin      = 30.0
)

// CategoryForScore maps a final score to its category band.
// The Unknown category is never produced here; it is reserved for the
// no-baseline sentinel and assigned by the calculator directly.
func CategoryForScore(score float64) Category {
	switch {
	case score >= OptimalMin:
		return CategoryOptimal
	case score >= ModerateMin:
		return CategoryModerate
	case score >= LowMin:
		return CategoryLow
	default:
		return CategoryFatigue
	}
}

// ReadinessScore is the computed readiness for one calendar date.
// ReadinessMode and BaselinePeriodDays snapshot the settings in effect at
// calculation time; scores computed under different settings are not
// silently comparable.
type ReadinessScore struct {
	ID                  uuid.UUID `json:"id"`
	Date                time.Time `json:"date"`
	Score               float64   `json:"score"`
	Category            Category  `json:"category"`
	HRVBaseline         float64   `json:"hrv_baseline"`
	HRVDeviationPercent float64   `json:"hrv_deviation_percent"`
	RHRAdjustment       float64   `json:"rhr_adjustment"`
	SleepAdjustment     float64   `json:"sleep_adjustment"`
	ReadinessMode       string    `json:"readiness_mode"`
	BaselinePeriodDays  int       `json:"baseline_period_days"`
	CalculatedAt        time.Time `json:"calculated_at"`
}

// NewReadinessScore creates a score record for the given day.
func NewReadinessScore(date time.Time) *ReadinessScore {
	return &ReadinessScore{
		ID:           uuid.New(),
		Date:         DateOf(date),
		CalculatedAt: time.Now(),
	}
}
