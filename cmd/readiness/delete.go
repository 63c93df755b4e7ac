// ABOUTME: CLI command for deleting a day's readiness data.
// ABOUTME: Removes the date's metrics; its score goes with them.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a day's readings and score",
	Long: `Delete the stored health readings for a date. The day's readiness
score is deleted along with them.

CAUTION:

  This permanently deletes the data. There is no undo. A later
  'readiness backfill' can re-import the day if the source still has it.

EXAMPLES:

  readiness delete 2025-06-15
  readiness rm 2025-06-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.ParseDate(args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", args[0])
		}

		if err := repo.DeleteMetrics(date); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no data stored for %s", args[0])
			}
			return fmt.Errorf("failed to delete: %w", err)
		}

		color.Yellow("✗ Deleted %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
