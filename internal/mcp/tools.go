// ABOUTME: MCP tool implementations for readiness scoring.
// ABOUTME: Exposes today's score, history, recalculation, and backfill.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/readiness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_today_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_today_readiness",
		Description: "Compute and return today's readiness score from current health data",
	}, s.handleGetTodayReadiness)

	// get_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_score",
		Description: "Get the stored readiness score for a date (YYYY-MM-DD)",
	}, s.handleGetScore)

	// list_scores
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_scores",
		Description: "List recent readiness scores, most recent first",
	}, s.handleListScores)

	// recalculate_date
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recalculate_date",
		Description: "Recalculate the readiness score for a date from stored metrics",
	}, s.handleRecalculateDate)

	// backfill_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "backfill_history",
		Description: "Import and score up to 90 days of historical health data",
	}, s.handleBackfillHistory)

	// delete_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_day",
		Description: "Delete a day's health metrics and its readiness score",
	}, s.handleDeleteDay)
}

// Tool input/output types

type getTodayInput struct {
	Force bool `json:"force,omitempty" jsonschema:"Rewrite the stored score even when unchanged"`
}

type scoreOutput struct {
	Date             string  `json:"date"`
	Score            float64 `json:"score"`
	Category         string  `json:"category"`
	HRVBaseline      float64 `json:"hrv_baseline"`
	DeviationPercent float64 `json:"deviation_percent"`
	RHRAdjustment    float64 `json:"rhr_adjustment"`
	SleepAdjustment  float64 `json:"sleep_adjustment"`
	Message          string  `json:"message"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Calendar date (YYYY-MM-DD)"`
}

type listScoresInput struct {
	Days int `json:"days,omitempty" jsonschema:"How many days back to list (default 30)"`
}

type backfillInput struct{}

type backfillOutput struct {
	Imported int    `json:"imported"`
	Scored   int    `json:"scored"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func scoreToOutput(sc *models.ReadinessScore) scoreOutput {
	out := scoreOutput{
		Date:             models.DateKey(sc.Date),
		Score:            sc.Score,
		Category:         string(sc.Category),
		HRVBaseline:      sc.HRVBaseline,
		DeviationPercent: sc.HRVDeviationPercent,
		RHRAdjustment:    sc.RHRAdjustment,
		SleepAdjustment:  sc.SleepAdjustment,
	}
	if sc.Category == models.CategoryUnknown {
		out.Message = "Not enough baseline history yet; score is unknown"
	} else {
		out.Message = fmt.Sprintf("Readiness %.1f (%s) for %s", sc.Score, sc.Category, out.Date)
	}
	return out
}

// Tool handlers

func (s *Server) handleGetTodayReadiness(ctx context.Context, req *mcp.CallToolRequest, input getTodayInput) (*mcp.CallToolResult, scoreOutput, error) {
	score, err := s.engine.ProcessToday(ctx, s.settings, input.Force)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("failed to compute readiness: %w", err)
	}
	return nil, scoreToOutput(score), nil
}

func (s *Server) handleGetScore(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, scoreOutput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
	}

	score, err := s.repo.GetScore(date)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("no score for %s", input.Date)
	}
	return nil, scoreToOutput(score), nil
}

func (s *Server) handleListScores(ctx context.Context, req *mcp.CallToolRequest, input listScoresInput) (*mcp.CallToolResult, any, error) {
	if input.Days <= 0 {
		input.Days = 30
	}

	scores, err := s.repo.GetScoreRange(input.Days)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list scores: %w", err)
	}

	if len(scores) == 0 {
		return nil, map[string]interface{}{"message": "No scores found."}, nil
	}

	out := make([]scoreOutput, 0, len(scores))
	for _, sc := range scores {
		out = append(out, scoreToOutput(sc))
	}
	return nil, out, nil
}

func (s *Server) handleRecalculateDate(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, scoreOutput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
	}

	score, err := s.engine.Recalculate(ctx, date, s.settings)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("failed to recalculate %s: %w", input.Date, err)
	}
	return nil, scoreToOutput(score), nil
}

func (s *Server) handleBackfillHistory(ctx context.Context, req *mcp.CallToolRequest, input backfillInput) (*mcp.CallToolResult, backfillOutput, error) {
	result, err := s.engine.Backfill(ctx, s.settings, nil)
	if err != nil {
		return nil, backfillOutput{}, fmt.Errorf("backfill failed: %w", err)
	}

	out := backfillOutput{
		Imported: result.Imported,
		Scored:   result.Scored,
		Skipped:  result.Skipped,
		Message:  fmt.Sprintf("Imported %d days, scored %d, skipped %d", result.Imported, result.Scored, result.Skipped),
	}
	if result.SkippedRun {
		out.Message = "Sufficient history already stored; nothing to do"
	}
	return nil, out, nil
}

func (s *Server) handleDeleteDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
	}

	if err := s.repo.DeleteMetrics(date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete %s: %w", input.Date, err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted metrics and score for %s", input.Date),
	}, nil
}
