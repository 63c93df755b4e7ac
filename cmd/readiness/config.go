// ABOUTME: CLI commands for viewing and editing readiness configuration.
// ABOUTME: Reads and writes the JSON config at the XDG config path.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/config"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change configuration",
	Long: `View or change readiness configuration.

SETTINGS:

  backend    Storage backend: sqlite (default) or charm
  data-dir   Data directory (sqlite backend only)
  source     Health source: simulated, or a path to a JSON readings file
  mode       Readiness window: morning (default) or rolling24h
  baseline   Baseline period in days: 7, 14 (default), or 30

Environment variables (READINESS_BACKEND, READINESS_MODE,
READINESS_BASELINE_DAYS, ...) override the config file at runtime
without changing it.

EXAMPLES:

  readiness config show
  readiness config set mode rolling24h
  readiness config set baseline 30
  readiness config set backend charm`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		faint := color.New(color.Faint)
		s := c.Settings()

		fmt.Printf("backend    %s\n", c.GetBackend())
		fmt.Printf("data-dir   %s\n", c.GetDataDir())
		if c.Source == "" {
			fmt.Printf("source     simulated %s\n", faint.Sprint("(default)"))
		} else {
			fmt.Printf("source     %s\n", c.Source)
		}
		fmt.Printf("mode       %s\n", s.Mode)
		fmt.Printf("baseline   %d days %s\n", s.BaselinePeriodDays,
			faint.Sprintf("(min %d samples)", s.MinimumSamplesForBaseline()))
		fmt.Printf("penalties  rhr=%v sleep=%v\n", s.UseRHRAdjustment, s.UseSleepAdjustment)
		faint.Printf("\nconfig file: %s\n", config.GetConfigPath())

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch key {
		case "backend":
			if value != "sqlite" && value != "charm" {
				return fmt.Errorf("unknown backend: %s (use sqlite or charm)", value)
			}
			c.Backend = value
		case "data-dir":
			c.DataDir = value
		case "source":
			c.Source = value
		case "mode":
			if !models.ValidMode(value) {
				return fmt.Errorf("unknown mode: %s (use morning or rolling24h)", value)
			}
			c.Mode = value
		case "baseline":
			days, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("baseline must be a number of days")
			}
			c.BaselinePeriodDays = days
			if err := c.Settings().Validate(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown setting: %s", key)
		}

		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
