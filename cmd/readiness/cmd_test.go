// ABOUTME: Tests for CLI helper functions and command wiring.
// ABOUTME: Tests padRight, categoryColor, and command registration.
package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"shorter than length", "low", 8, "low     "},
		{"equal to length", "moderate", 8, "moderate"},
		{"longer than length", "optimal!", 4, "optimal!"},
		{"empty string", "", 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestCategoryColor(t *testing.T) {
	// Each category must map to a distinct, non-nil color.
	categories := []models.Category{
		models.CategoryOptimal,
		models.CategoryModerate,
		models.CategoryLow,
		models.CategoryFatigue,
		models.CategoryUnknown,
	}

	seen := make(map[string]models.Category)
	for _, c := range categories {
		col := categoryColor(c)
		if col == nil {
			t.Fatalf("categoryColor(%s) returned nil", c)
		}

		color.NoColor = false
		rendered := col.Sprint("x")
		if prev, dup := seen[rendered]; dup {
			t.Errorf("categories %s and %s share a color", prev, c)
		}
		seen[rendered] = c
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"today", "recalc", "backfill", "list", "show", "delete",
		"export", "import", "serve", "mcp", "config", "sync",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTodayForceFlag(t *testing.T) {
	flag := todayCmd.Flags().Lookup("force")
	if flag == nil {
		t.Fatal("today command missing --force flag")
	}
	if flag.DefValue != "false" {
		t.Errorf("force default = %s, want false", flag.DefValue)
	}
}

func TestListDaysFlag(t *testing.T) {
	flag := listCmd.Flags().Lookup("days")
	if flag == nil {
		t.Fatal("list command missing --days flag")
	}
	if flag.DefValue != "30" {
		t.Errorf("days default = %s, want 30", flag.DefValue)
	}
}

func TestServeScheduleFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("schedule")
	if flag == nil {
		t.Fatal("serve command missing --schedule flag")
	}
	if flag.DefValue != "0 7 * * *" {
		t.Errorf("schedule default = %q, want %q", flag.DefValue, "0 7 * * *")
	}
}
