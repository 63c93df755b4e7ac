// ABOUTME: CLI command for importing and scoring historical health data.
// ABOUTME: Walks dates forward so every score uses only preceding days.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/engine"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Import and score 90 days of history",
	Long: `Import up to 90 days of historical readings from the configured
health source and score them chronologically.

Each day is scored against a baseline built only from the days before
it, so backfilled scores match what live scoring would have produced.
The earliest days stay unscored until enough history accumulates.

Backfill is skipped when sufficient history is already stored. It is
safe to interrupt (Ctrl-C) and run again; already-imported days are
updated in place, never duplicated.

EXAMPLES:

  readiness backfill`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New(repo, src)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		var lastStage string
		progress := func(fraction float64, stage string) {
			if stage != lastStage {
				if lastStage != "" {
					fmt.Println()
				}
				lastStage = stage
			}
			fmt.Printf("\r%s %3.0f%%", stage, fraction*100)
		}

		result, err := eng.Backfill(ctx, cfg.Settings(), progress)
		if lastStage != "" {
			fmt.Println()
		}
		if err != nil {
			if ctx.Err() != nil {
				color.Yellow("Backfill interrupted; run again to resume.")
				return nil
			}
			return fmt.Errorf("backfill failed: %w", err)
		}

		if result.SkippedRun {
			fmt.Println("Enough history already stored; nothing to do.")
			return nil
		}

		color.Green("✓ Backfill complete")
		fmt.Printf("  Imported: %d days\n", result.Imported)
		fmt.Printf("  Scored:   %d days\n", result.Scored)
		if result.Skipped > 0 {
			fmt.Printf("  Skipped:  %d days (insufficient baseline)\n", result.Skipped)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}
