// ABOUTME: CLI command for showing one day's metrics and score in detail.
// ABOUTME: Prints readings, baseline context, and every score adjustment.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show one day's readings and score",
	Long: `Show the stored health readings and readiness score for a date.

EXAMPLES:

  readiness show 2025-06-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.ParseDate(args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", args[0])
		}

		m, err := repo.GetMetrics(date)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no data stored for %s", args[0])
			}
			return fmt.Errorf("failed to read metrics: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", models.DateKey(m.Date), faint.Sprint(m.ID.String()[:8]))
		fmt.Println()
		if m.HasValidHRV() {
			fmt.Printf("  HRV           %.1f ms\n", m.HRV)
		}
		if m.HasValidRHR() {
			fmt.Printf("  Resting HR    %.0f bpm\n", m.RestingHeartRate)
		}
		if m.HasValidSleep() {
			fmt.Printf("  Sleep         %.1f h", m.SleepHours)
			if m.SleepQuality > 0 {
				fmt.Printf("  %s", faint.Sprintf("(quality %d)", m.SleepQuality))
			}
			fmt.Println()
		}

		s, err := repo.GetScore(date)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println()
				faint.Println("  No score for this day. Run 'readiness recalc' to compute one.")
				return nil
			}
			return fmt.Errorf("failed to read score: %w", err)
		}

		fmt.Println()
		fmt.Print("  Readiness     ")
		categoryColor(s.Category).Printf("%.1f", s.Score)
		fmt.Printf(" %s\n", s.Category)
		fmt.Printf("  Baseline      %.1f ms over %d days (%s mode)\n",
			s.HRVBaseline, s.BaselinePeriodDays, s.ReadinessMode)
		fmt.Printf("  Deviation     %+.1f%%\n", s.HRVDeviationPercent)
		if s.RHRAdjustment != 0 {
			fmt.Printf("  RHR penalty   %+.0f\n", s.RHRAdjustment)
		}
		if s.SleepAdjustment != 0 {
			fmt.Printf("  Sleep penalty %+.0f\n", s.SleepAdjustment)
		}
		faint.Printf("  Calculated    %s\n", s.CalculatedAt.Format("2006-01-02 15:04"))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
