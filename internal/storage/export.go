// ABOUTME: Export and import functionality for readiness data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"gopkg.in/yaml.v3"
)

// exportRangeDays bounds how far back exports reach. Ten years of daily
// records is far beyond any realistic dataset.
const exportRangeDays = 3650

// ExportData represents the full export format for readiness data.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Metrics    []*models.HealthMetrics  `json:"metrics" yaml:"metrics"`
	Scores     []*models.ReadinessScore `json:"scores" yaml:"scores"`
}

// GetAllData retrieves all data for export, oldest first.
func (d *DB) GetAllData() (*ExportData, error) {
	metrics, err := d.GetMetricsRange(exportRangeDays)
	if err != nil {
		return nil, fmt.Errorf("export metrics: %w", err)
	}

	scores, err := d.GetScoreRange(exportRangeDays)
	if err != nil {
		return nil, fmt.Errorf("export scores: %w", err)
	}

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date.Before(metrics[j].Date) })
	sort.Slice(scores, func(i, j int) bool { return scores[i].Date.Before(scores[j].Date) })

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "readiness",
		Metrics:    metrics,
		Scores:     scores,
	}, nil
}

// ImportData imports data from an export file. Metrics land before scores
// so score ownership is satisfied; existing dates are overwritten.
func (d *DB) ImportData(data *ExportData) error {
	for _, m := range data.Metrics {
		if _, err := d.UpsertMetrics(m); err != nil {
			return fmt.Errorf("import metrics %s: %w", models.DateKey(m.Date), err)
		}
	}

	for _, s := range data.Scores {
		if _, err := d.UpsertScore(s); err != nil {
			return fmt.Errorf("import score %s: %w", models.DateKey(s.Date), err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return data.JSON()
}

// ExportYAML exports all data as YAML with day-keyed entries.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return data.YAML()
}

// JSON renders the export as indented JSON.
func (data *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// YAML renders the export as day-keyed YAML.
func (data *ExportData) YAML() ([]byte, error) {
	yamlData := struct {
		Version    string    `yaml:"version"`
		ExportedAt string    `yaml:"exported_at"`
		Tool       string    `yaml:"tool"`
		Days       []yamlDay `yaml:"days"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
	}

	scoreByDate := make(map[string]*models.ReadinessScore, len(data.Scores))
	for _, s := range data.Scores {
		scoreByDate[models.DateKey(s.Date)] = s
	}

	for _, m := range data.Metrics {
		day := yamlDay{
			Date:         models.DateKey(m.Date),
			HRV:          m.HRV,
			RHR:          m.RestingHeartRate,
			SleepHours:   m.SleepHours,
			SleepQuality: m.SleepQuality,
		}
		if s, ok := scoreByDate[day.Date]; ok {
			day.Score = &yamlScore{
				Score:            s.Score,
				Category:         string(s.Category),
				HRVBaseline:      s.HRVBaseline,
				DeviationPercent: s.HRVDeviationPercent,
				RHRAdjustment:    s.RHRAdjustment,
				SleepAdjustment:  s.SleepAdjustment,
			}
		}
		yamlData.Days = append(yamlData.Days, day)
	}

	return yaml.Marshal(yamlData)
}

type yamlDay struct {
	Date         string     `yaml:"date"`
	HRV          float64    `yaml:"hrv,omitempty"`
	RHR          float64    `yaml:"rhr,omitempty"`
	SleepHours   float64    `yaml:"sleep_hours,omitempty"`
	SleepQuality int        `yaml:"sleep_quality,omitempty"`
	Score        *yamlScore `yaml:"score,omitempty"`
}

type yamlScore struct {
	Score            float64 `yaml:"score"`
	Category         string  `yaml:"category"`
	HRVBaseline      float64 `yaml:"hrv_baseline"`
	DeviationPercent float64 `yaml:"deviation_percent"`
	RHRAdjustment    float64 `yaml:"rhr_adjustment,omitempty"`
	SleepAdjustment  float64 `yaml:"sleep_adjustment,omitempty"`
}

// ParseImport decodes a JSON export payload.
func ParseImport(data []byte) (*ExportData, error) {
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse import data: %w", err)
	}
	return &export, nil
}
