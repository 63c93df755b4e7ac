// ABOUTME: Tests for Settings validation and derived minimum sample counts.
// ABOUTME: Ensures the sample floor scales with the lookback window.
package models

import "testing"

func TestMinimumSamplesForPeriod(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{7, 3},
		{14, 5},
		{30, 7},
	}
	for _, tt := range tests {
		if got := MinimumSamplesForPeriod(tt.days); got != tt.want {
			t.Errorf("MinimumSamplesForPeriod(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}

	s.BaselinePeriodDays = 10
	if err := s.Validate(); err == nil {
		t.Error("expected error for unsupported period")
	}

	s = DefaultSettings()
	s.Mode = "afternoon"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestMinimumSamplesForBaseline(t *testing.T) {
	s := Settings{Mode: ModeRolling24h, BaselinePeriodDays: 30}
	if got := s.MinimumSamplesForBaseline(); got != 7 {
		t.Errorf("MinimumSamplesForBaseline = %d, want 7", got)
	}
}
