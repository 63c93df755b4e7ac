// ABOUTME: CLI command running the scoring engine on a cron schedule.
// ABOUTME: Scores today on startup, then again at each scheduled tick.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/readiness/internal/engine"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var serveSchedule string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Score today's readiness on a schedule",
	Long: `Run in the foreground and recompute today's readiness score on a
cron schedule. Useful on an always-on machine so the score is ready
before you ask for it.

The score is computed once at startup, then at each scheduled tick.
Re-running on the same day updates the stored score in place.

SCHEDULE FORMAT:

  Standard five-field cron. The default "0 7 * * *" scores daily at
  07:00 local time.

EXAMPLES:

  readiness serve                        # Daily at 07:00
  readiness serve --schedule "0 */4 * * *"   # Every four hours`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New(repo, src)
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "readiness",
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		runOnce := func() {
			score, err := eng.ProcessToday(ctx, cfg.Settings(), false)
			if err != nil {
				if errors.Is(err, engine.ErrNoData) {
					logger.Warn("no HRV reading available yet", "source", src.Name())
				} else {
					logger.Error("scoring failed", "err", err)
				}
				return
			}
			logger.Info("scored today",
				"score", fmt.Sprintf("%.1f", score.Score),
				"category", score.Category)
		}

		c := cron.New()
		if _, err := c.AddFunc(serveSchedule, runOnce); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", serveSchedule, err)
		}

		runOnce()
		c.Start()
		logger.Info("scheduler started", "schedule", serveSchedule)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		stopCtx := c.Stop()
		<-stopCtx.Done()
		logger.Info("scheduler stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveSchedule, "schedule", "0 7 * * *", "cron schedule for rescoring")
	rootCmd.AddCommand(serveCmd)
}
