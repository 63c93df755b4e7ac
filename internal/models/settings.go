// ABOUTME: Immutable engine settings: readiness mode, baseline period, penalties.
// ABOUTME: Passed explicitly into every calculation; no global mutable prefs.
package models

import "fmt"

// Mode selects which time-of-day window counts as "today's" HRV reading.
type Mode string

const (
	// ModeMorning samples from midnight to noon, favoring overnight and
	// wake-up readings.
	ModeMorning Mode = "morning"
	// ModeRolling24h samples the trailing 24 hours.
	ModeRolling24h Mode = "rolling24h"
)

// ValidMode reports whether s names a known readiness mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeMorning, ModeRolling24h:
		return true
	}
	return false
}

// BaselinePeriods lists the supported lookback windows in days.
var BaselinePeriods = []int{7, 14, 30}

// MinimumSamplesForPeriod returns the minimum valid-sample count required
// for a statistically usable baseline over the given lookback window.
func MinimumSamplesForPeriod(days int) int {
	switch {
	case days >= 30:
		return 7
	case days >= 14:
		return 5
	default:
		return 3
	}
}

// Settings is the immutable configuration snapshot for one engine call.
type Settings struct {
	Mode               Mode
	BaselinePeriodDays int
	UseRHRAdjustment   bool
	UseSleepAdjustment bool
}

// DefaultSettings returns the engine defaults: morning mode, 14-day
// baseline, both penalty adjustments enabled.
func DefaultSettings() Settings {
	return Settings{
		Mode:               ModeMorning,
		BaselinePeriodDays: 14,
		UseRHRAdjustment:   true,
		UseSleepAdjustment: true,
	}
}

// MinimumSamplesForBaseline derives the sample floor from the period.
func (s Settings) MinimumSamplesForBaseline() int {
	return MinimumSamplesForPeriod(s.BaselinePeriodDays)
}

// Validate checks that the settings name a known mode and period.
func (s Settings) Validate() error {
	if !ValidMode(string(s.Mode)) {
		return fmt.Errorf("unknown readiness mode: %q", s.Mode)
	}
	for _, p := range BaselinePeriods {
		if s.BaselinePeriodDays == p {
			return nil
		}
	}
	return fmt.Errorf("unsupported baseline period: %d days (valid: 7, 14, 30)", s.BaselinePeriodDays)
}
