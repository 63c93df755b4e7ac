// ABOUTME: HealthMetrics model, one record per calendar date.
// ABOUTME: Zero-valued fields mean "no reading that day", not a literal zero.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical day-granularity key format.
const DateLayout = "2006-01-02"

// Validity bounds for raw readings. Values outside these ranges are
// treated as sensor noise and excluded from baselines and scoring.
const (
	MinValidHRV   = 10.0  // ms
	MinValidRHR   = 30.0  // bpm
	MaxValidRHR   = 120.0 // bpm
	MaxValidSleep = 12.0  // hours
)

// HealthMetrics holds one day's aggregate physiological readings.
// Date is the unique business key (day granularity, no time component).
type HealthMetrics struct {
	ID               uuid.UUID `json:"id"`
	Date             time.Time `json:"date"`
	HRV              float64   `json:"hrv"`
	RestingHeartRate float64   `json:"resting_heart_rate"`
	SleepHours       float64   `json:"sleep_hours"`
	SleepQuality     int       `json:"sleep_quality"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewHealthMetrics creates a record for the given day with generated UUID.
func NewHealthMetrics(date time.Time) *HealthMetrics {
	now := time.Now()
	return &HealthMetrics{
		ID:        uuid.New(),
		Date:      DateOf(date),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey returns the canonical string key for a day.
func DateKey(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// HasValidHRV reports whether the HRV reading is usable for scoring.
func (m *HealthMetrics) HasValidHRV() bool {
	return ValidHRV(m.HRV)
}

// HasValidRHR reports whether the resting heart rate reading is usable.
func (m *HealthMetrics) HasValidRHR() bool {
	return ValidRHR(m.RestingHeartRate)
}

// HasValidSleep reports whether the sleep duration reading is usable.
func (m *HealthMetrics) HasValidSleep() bool {
	return ValidSleep(m.SleepHours)
}

// ValidHRV reports whether an HRV value is physiologically plausible.
func ValidHRV(v float64) bool {
	return v >= MinValidHRV
}

// ValidRHR reports whether a resting heart rate is physiologically plausible.
func ValidRHR(v float64) bool {
	return v >= MinValidRHR && v <= MaxValidRHR
}

// ValidSleep reports whether a sleep duration is physiologically plausible.
func ValidSleep(v float64) bool {
	return v > 0 && v <= MaxValidSleep
}
