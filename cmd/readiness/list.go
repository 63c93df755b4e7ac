// ABOUTME: CLI command for listing recent readiness scores.
// ABOUTME: One line per day with score, category, and deviation.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var listDays int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent readiness scores",
	Long: `List readiness scores for recent days, most recent first.

OUTPUT FORMAT:

  Each line shows: DATE  SCORE  CATEGORY  HRV-DEVIATION

EXAMPLES:

  readiness list           # Last 30 days
  readiness list -n 7      # Last week
  readiness ls -n 90       # Full quarter`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := repo.GetScoreRange(listDays)
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}

		if len(scores) == 0 {
			fmt.Println("No scores found. Run 'readiness backfill' or 'readiness today' first.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range scores {
			fmt.Printf("%s  %s  %s %s\n",
				faint.Sprint(models.DateKey(s.Date)),
				categoryColor(s.Category).Sprintf("%5.1f", s.Score),
				padRight(string(s.Category), 8),
				faint.Sprintf("%+.1f%%", s.HRVDeviationPercent))
		}

		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listDays, "days", "n", 30, "how many days back to list")
	rootCmd.AddCommand(listCmd)
}
