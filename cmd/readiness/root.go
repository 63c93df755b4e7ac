// ABOUTME: Root Cobra command for readiness CLI.
// ABOUTME: Opens config, storage, and source via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/readiness/internal/config"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
	src  source.Source
)

var rootCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Daily readiness score from HRV, resting heart rate, and sleep",
	Long: `Readiness computes a daily 0-100 training readiness score from your
heart rate variability, resting heart rate, and sleep.

HOW IT WORKS:

  Your HRV is compared against your own rolling baseline (7, 14, or 30
  days). Scores are banded into categories:

    optimal   80-100   Go hard
    moderate  50-79    Train as planned
    low       30-49    Take it easy
    fatigue   0-29     Rest day

  Elevated resting heart rate and short sleep pull the score down.

QUICK START:

  $ readiness backfill            # Import and score 90 days of history
  $ readiness today               # Compute today's score
  $ readiness list                # Recent scores
  $ readiness show 2025-06-15     # One day in detail

AUTOMATION:

  $ readiness serve               # Score today on a cron schedule
  $ readiness mcp                 # MCP server for AI assistants

DATA STORAGE:

  Scores live in SQLite at ~/.local/share/readiness/readiness.db by
  default. Set backend "charm" in the config to sync across devices
  via Charm Cloud instead (E2E encrypted with your SSH key).

CONFIGURATION:

  Config lives at ~/.config/readiness/config.json. Environment
  variables (READINESS_MODE, READINESS_BASELINE_DAYS, ...) override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		for c := cmd; c != nil; c = c.Parent() {
			if c.Name() == "help" || c.Name() == "config" {
				return nil
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		src, err = cfg.OpenSource()
		if err != nil {
			return fmt.Errorf("failed to open health source: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
