// ABOUTME: MCP resource implementations for readiness data.
// ABOUTME: Provides readiness://today, readiness://history, readiness://trend.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// readiness://today - Today's metrics and score
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://today",
		Name:        "Today's Readiness",
		Description: "Today's health metrics and readiness score",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// readiness://history - Last 30 days of scores
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://history",
		Name:        "Readiness History",
		Description: "Readiness scores for the last 30 days",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// readiness://trend - Weekly trend summary
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://trend",
		Name:        "Readiness Trend",
		Description: "Average score and category counts over the last 7 and 30 days",
		MIMEType:    "application/json",
	}, s.handleTrendResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.DateOf(time.Now())

	result := map[string]interface{}{
		"date": models.DateKey(today),
	}

	if m, err := s.repo.GetMetrics(today); err == nil {
		result["metrics"] = m
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to read metrics: %w", err)
	}

	if sc, err := s.repo.GetScore(today); err == nil {
		result["score"] = scoreToOutput(sc)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to read score: %w", err)
	}

	return marshalResource("readiness://today", result)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	scores, err := s.repo.GetScoreRange(30)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	history := make([]scoreOutput, 0, len(scores))
	for _, sc := range scores {
		history = append(history, scoreToOutput(sc))
	}

	result := map[string]interface{}{
		"days":   30,
		"count":  len(history),
		"scores": history,
	}

	return marshalResource("readiness://history", result)
}

func (s *Server) handleTrendResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	scores, err := s.repo.GetScoreRange(30)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	weekCutoff := models.DateOf(time.Now()).AddDate(0, 0, -7)
	categories := make(map[string]int)
	var sum30, sum7 float64
	var count7 int

	for _, sc := range scores {
		sum30 += sc.Score
		categories[string(sc.Category)]++
		if !sc.Date.Before(weekCutoff) {
			sum7 += sc.Score
			count7++
		}
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"categories":   categories,
		"days_scored":  len(scores),
	}
	if len(scores) > 0 {
		result["average_30d"] = sum30 / float64(len(scores))
	}
	if count7 > 0 {
		result["average_7d"] = sum7 / float64(count7)
	}

	return marshalResource("readiness://trend", result)
}

func marshalResource(uri string, result interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
