// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/readiness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "readiness": {
        "command": "readiness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_today_readiness  Compute today's score from current readings
  get_score            Get a stored score by date
  list_scores          List recent scores
  recalculate_date     Recalculate a date from stored metrics
  backfill_history     Import and score historical data
  delete_day           Delete a day's metrics and score

AVAILABLE RESOURCES:

  readiness://today     Today's metrics and score
  readiness://history   Scores for the last 30 days
  readiness://trend     7- and 30-day averages and category counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, src, cfg.Settings())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
