// ABOUTME: Tests for ReadinessScore model and category band mapping.
// ABOUTME: Verifies fixed band edges and that category follows score alone.
package models

import (
	"testing"
	"time"
)

func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Category
	}{
		{100, CategoryOptimal},
		{80, CategoryOptimal},
		{79.9, CategoryModerate},
		{50, CategoryModerate},
		{49.9, CategoryLow},
		{30, CategoryLow},
		{29.9, CategoryFatigue},
		{0, CategoryFatigue},
	}

	for _, tt := range tests {
		if got := CategoryForScore(tt.score); got != tt.want {
			t.Errorf("CategoryForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNewReadinessScore(t *testing.T) {
	s := NewReadinessScore(time.Date(2025, 2, 1, 18, 30, 0, 0, time.UTC))
	if s.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if DateKey(s.Date) != "2025-02-01" {
		t.Errorf("Date = %v, want 2025-02-01", s.Date)
	}
	if s.CalculatedAt.IsZero() {
		t.Error("expected CalculatedAt to be set")
	}
}
