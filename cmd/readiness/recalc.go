// ABOUTME: CLI command for recalculating a stored day's readiness score.
// ABOUTME: Recomputes from stored metrics only; never touches the source.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/readiness/internal/engine"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var recalcCmd = &cobra.Command{
	Use:   "recalc <date>",
	Short: "Recalculate a day's readiness score",
	Long: `Recalculate the readiness score for a past date from its stored
metrics. Use this after correcting a day's readings or changing the
baseline period.

The score is always rewritten, even when unchanged. Only stored data is
used; the health source is not contacted.

EXAMPLES:

  readiness recalc 2025-06-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.ParseDate(args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", args[0])
		}

		eng := engine.New(repo, src)

		score, err := eng.Recalculate(context.Background(), date, cfg.Settings())
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrHistoricalDataMissing):
				return fmt.Errorf("no metrics stored for %s", args[0])
			case errors.Is(err, engine.ErrHistoricalDataIncomplete):
				return fmt.Errorf("metrics for %s have no usable HRV reading", args[0])
			}
			return fmt.Errorf("failed to recalculate: %w", err)
		}

		printScore(score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recalcCmd)
}
