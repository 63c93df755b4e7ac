// ABOUTME: CLI command for computing today's readiness score.
// ABOUTME: Fetches current readings, scores them, and prints the result.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/engine"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var todayForce bool

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"now"},
	Short:   "Compute today's readiness score",
	Long: `Fetch today's readings from the configured health source, store them,
and compute the readiness score.

Running again on the same day updates the stored readings and score in
place; small score changes are skipped unless --force is given.

EXAMPLES:

  readiness today           # Compute and show today's score
  readiness today --force   # Rewrite the score even if unchanged`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New(repo, src)

		score, err := eng.ProcessToday(context.Background(), cfg.Settings(), todayForce)
		if err != nil {
			if errors.Is(err, engine.ErrNoData) {
				return fmt.Errorf("no HRV reading available from %s today", src.Name())
			}
			return fmt.Errorf("failed to compute readiness: %w", err)
		}

		printScore(score)
		return nil
	},
}

// printScore renders one score with its category color.
func printScore(s *models.ReadinessScore) {
	faint := color.New(color.Faint)

	if s.Category == models.CategoryUnknown {
		color.Yellow("Readiness unknown for %s", models.DateKey(s.Date))
		fmt.Println("  Not enough history yet to establish your baseline.")
		fmt.Println("  Keep logging daily, or run 'readiness backfill' to import history.")
		return
	}

	categoryColor(s.Category).Printf("%.0f", s.Score)
	fmt.Printf(" %s  %s\n", s.Category, faint.Sprint(models.DateKey(s.Date)))

	fmt.Printf("  HRV %+.1f%% vs %d-day baseline (%.1f ms)\n",
		s.HRVDeviationPercent, s.BaselinePeriodDays, s.HRVBaseline)
	if s.RHRAdjustment != 0 {
		color.Yellow("  %+.0f elevated resting heart rate", s.RHRAdjustment)
	}
	if s.SleepAdjustment != 0 {
		color.Yellow("  %+.0f short sleep", s.SleepAdjustment)
	}
}

func categoryColor(c models.Category) *color.Color {
	switch c {
	case models.CategoryOptimal:
		return color.New(color.FgGreen, color.Bold)
	case models.CategoryModerate:
		return color.New(color.FgCyan, color.Bold)
	case models.CategoryLow:
		return color.New(color.FgYellow, color.Bold)
	case models.CategoryFatigue:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

func init() {
	todayCmd.Flags().BoolVarP(&todayForce, "force", "f", false, "rewrite the stored score even when unchanged")
	rootCmd.AddCommand(todayCmd)
}
