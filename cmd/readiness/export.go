// ABOUTME: CLI commands for exporting and importing readiness data.
// ABOUTME: Supports JSON and YAML export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export readiness data",
	Long: `Export stored metrics and scores in various formats.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   Day-keyed YAML (human-readable)

EXAMPLES:

  readiness export json                  # Export all data as JSON
  readiness export json -o backup.json   # Save to file
  readiness export yaml                  # Export as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		export, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = export.JSON()
		case "yaml":
			data, err = export.YAML()
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import readiness data from JSON",
	Long: `Import metrics and scores from a previously exported JSON file.

Existing dates are overwritten; imports are safe to repeat.

EXAMPLES:

  readiness import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		export, err := storage.ParseImport(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := repo.ImportData(export); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d days from %s", len(export.Metrics), filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
