// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "readiness.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	db := setupTestDB(t)
	server, err := NewServer(db, source.NewSimulated(1), models.DefaultSettings())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

// seedDay stores metrics and a score for a date N days back from today.
func seedDay(t *testing.T, db *storage.DB, daysAgo int, hrv float64, score float64) {
	t.Helper()

	date := models.DateOf(time.Now()).AddDate(0, 0, -daysAgo)
	m := models.NewHealthMetrics(date)
	m.HRV = hrv
	m.RestingHeartRate = 58
	m.SleepHours = 7.5
	if _, err := db.UpsertMetrics(m); err != nil {
		t.Fatalf("UpsertMetrics failed: %v", err)
	}

	if score >= 0 {
		sc := models.NewReadinessScore(date)
		sc.Score = score
		sc.Category = models.CategoryForScore(score)
		sc.HRVBaseline = 50
		sc.ReadinessMode = string(models.ModeMorning)
		sc.BaselinePeriodDays = 14
		if _, err := db.UpsertScore(sc); err != nil {
			t.Fatalf("UpsertScore failed: %v", err)
		}
	}
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.engine == nil {
		t.Error("Expected non-nil engine")
	}
}

func TestHandleGetScore(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 1, 52, 85)
	date := models.DateKey(models.DateOf(time.Now()).AddDate(0, 0, -1))

	_, output, err := server.handleGetScore(ctx, &mcp.CallToolRequest{}, dateInput{Date: date})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if output.Date != date {
		t.Errorf("Date = %s, want %s", output.Date, date)
	}
	if output.Score != 85 {
		t.Errorf("Score = %f, want 85", output.Score)
	}
	if output.Category != "optimal" {
		t.Errorf("Category = %s, want optimal", output.Category)
	}
	if output.Message == "" {
		t.Error("Expected non-empty Message")
	}
}

func TestHandleGetScoreInvalidDate(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleGetScore(ctx, &mcp.CallToolRequest{}, dateInput{Date: "not-a-date"})
	if err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestHandleGetScoreNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleGetScore(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2020-01-01"})
	if err == nil {
		t.Error("Expected error for missing score")
	}
}

func TestHandleListScores(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 1, 52, 85)
	seedDay(t, db, 2, 48, 62)

	tests := []struct {
		name  string
		input listScoresInput
	}{
		{name: "list all scores", input: listScoresInput{}},
		{name: "list with default days", input: listScoresInput{Days: 0}},
		{name: "list with explicit days", input: listScoresInput{Days: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListScores(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			scores, ok := output.([]scoreOutput)
			if !ok {
				t.Fatalf("Expected score slice output, got %T", output)
			}
			if len(scores) != 2 {
				t.Errorf("Expected 2 scores, got %d", len(scores))
			}
		})
	}
}

func TestHandleListScoresEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleListScores(ctx, &mcp.CallToolRequest{}, listScoresInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Should return a message map for empty results
	if output == nil {
		t.Error("Expected non-nil output")
	}
	if _, ok := output.(map[string]interface{}); !ok {
		t.Errorf("Expected message map for empty results, got %T", output)
	}
}

func TestHandleRecalculateDate(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	// Two weeks of history so the baseline is usable.
	for i := 1; i <= 14; i++ {
		seedDay(t, db, i, 50, -1)
	}
	date := models.DateKey(models.DateOf(time.Now()).AddDate(0, 0, -1))

	_, output, err := server.handleRecalculateDate(ctx, &mcp.CallToolRequest{}, dateInput{Date: date})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if output.Date != date {
		t.Errorf("Date = %s, want %s", output.Date, date)
	}
	if output.Category == "unknown" {
		t.Error("Expected a computed score, got unknown")
	}
}

func TestHandleRecalculateDateMissing(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleRecalculateDate(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2020-01-01"})
	if err == nil {
		t.Error("Expected error for date with no metrics")
	}
}

func TestHandleDeleteDay(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 1, 52, 85)
	date := models.DateOf(time.Now()).AddDate(0, 0, -1)

	_, output, err := server.handleDeleteDay(ctx, &mcp.CallToolRequest{}, dateInput{Date: models.DateKey(date)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	// Verify deleted, score included
	if _, err := db.GetMetrics(date); err == nil {
		t.Error("Expected metrics to be deleted")
	}
	if _, err := db.GetScore(date); err == nil {
		t.Error("Expected score to be deleted")
	}
}

func TestHandleDeleteDayNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleDeleteDay(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2020-01-01"})
	if err == nil {
		t.Error("Expected error for nonexistent day")
	}
}

func TestHandleGetTodayReadiness(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	for i := 1; i <= 14; i++ {
		seedDay(t, db, i, 50, -1)
	}

	_, output, err := server.handleGetTodayReadiness(ctx, &mcp.CallToolRequest{}, getTodayInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if output.Date != models.DateKey(models.DateOf(time.Now())) {
		t.Errorf("Date = %s, want today", output.Date)
	}
	if output.Category == "unknown" {
		t.Error("Expected a computed score with 14 days of history")
	}
	if output.Score < 0 || output.Score > 100 {
		t.Errorf("Score %f out of range", output.Score)
	}
}

func TestHandleGetTodayReadinessNoBaseline(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	// No history: readiness is unknown but not an error.
	_, output, err := server.handleGetTodayReadiness(ctx, &mcp.CallToolRequest{}, getTodayInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Category != "unknown" {
		t.Errorf("Category = %s, want unknown", output.Category)
	}
	if output.Score != 0 {
		t.Errorf("Score = %f, want 0", output.Score)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 0, 52, 85)

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "readiness://today" {
		t.Errorf("URI = %s, want readiness://today", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !contains(result.Contents[0].Text, "optimal") {
		t.Error("Expected today's score category in result")
	}
}

func TestHandleTodayResourceEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
}

func TestHandleHistoryResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 1, 52, 85)
	seedDay(t, db, 2, 48, 62)

	result, err := server.handleHistoryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Contents[0].URI != "readiness://history" {
		t.Errorf("URI = %s, want readiness://history", result.Contents[0].URI)
	}
	if !contains(result.Contents[0].Text, "\"count\": 2") {
		t.Errorf("Expected count 2 in history, got: %s", result.Contents[0].Text)
	}
}

func TestHandleTrendResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	seedDay(t, db, 1, 52, 85)
	seedDay(t, db, 2, 48, 62)
	seedDay(t, db, 20, 45, 40)

	result, err := server.handleTrendResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := result.Contents[0].Text
	if result.Contents[0].URI != "readiness://trend" {
		t.Errorf("URI = %s, want readiness://trend", result.Contents[0].URI)
	}
	if !contains(text, "average_30d") {
		t.Error("Expected average_30d in trend")
	}
	if !contains(text, "average_7d") {
		t.Error("Expected average_7d in trend")
	}
	if !contains(text, "optimal") || !contains(text, "moderate") || !contains(text, "low") {
		t.Error("Expected category counts in trend")
	}
}

func TestHandleTrendResourceEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleTrendResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	// No averages without data
	if contains(result.Contents[0].Text, "average_30d") {
		t.Error("Did not expect average_30d with no scores")
	}
}

// Helper function.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsImpl(s, substr))
}

func containsImpl(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
