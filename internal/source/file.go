// ABOUTME: File-backed health source reading a JSON daily-readings export.
// ABOUTME: Lets real device data feed the engine without a live integration.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// FileSource serves readings parsed from a JSON export file. The file is
// an array of daily readings: [{"date":"2025-01-02","hrv":48.5,...}, ...].
type FileSource struct {
	path     string
	readings map[string]Reading
	Now      func() time.Time
}

type fileReading struct {
	Date         string  `json:"date"`
	HRV          float64 `json:"hrv,omitempty"`
	RHR          float64 `json:"rhr,omitempty"`
	SleepHours   float64 `json:"sleep_hours,omitempty"`
	SleepQuality int     `json:"sleep_quality,omitempty"`
}

// OpenFile parses a readings file into a FileSource.
func OpenFile(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	var entries []fileReading
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse source file: %w", err)
	}

	readings := make(map[string]Reading, len(entries))
	for _, e := range entries {
		date, err := models.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("parse source file date %q: %w", e.Date, err)
		}
		readings[models.DateKey(date)] = Reading{
			Date:         date,
			HRV:          e.HRV,
			RHR:          e.RHR,
			SleepHours:   e.SleepHours,
			SleepQuality: e.SleepQuality,
		}
	}

	return &FileSource{path: path, readings: readings, Now: time.Now}, nil
}

func (f *FileSource) Name() string { return "file:" + f.path }

// FetchHRV returns the reading for the window's day, if present.
func (f *FileSource) FetchHRV(_ context.Context, start, end time.Time) (float64, error) {
	// A window spanning midnight belongs to the day it ends on.
	r, ok := f.readings[models.DateKey(end)]
	if !ok {
		r, ok = f.readings[models.DateKey(start)]
	}
	if !ok || r.HRV == 0 {
		return 0, fmt.Errorf("no HRV for %s: %w", models.DateKey(end), ErrUnavailable)
	}
	return r.HRV, nil
}

func (f *FileSource) FetchRestingHeartRate(ctx context.Context) (float64, error) {
	r, ok := f.readings[models.DateKey(f.Now())]
	if !ok || r.RHR == 0 {
		return 0, fmt.Errorf("no resting heart rate for today: %w", ErrUnavailable)
	}
	return r.RHR, nil
}

func (f *FileSource) FetchSleep(ctx context.Context) (Sleep, error) {
	r, ok := f.readings[models.DateKey(f.Now())]
	if !ok || r.SleepHours == 0 {
		return Sleep{}, fmt.Errorf("no sleep data for today: %w", ErrUnavailable)
	}
	return Sleep{Hours: r.SleepHours, Quality: r.SleepQuality}, nil
}

// ImportHistorical returns the file's readings within the last N days,
// oldest first.
func (f *FileSource) ImportHistorical(ctx context.Context, days int, onProgress ProgressFunc) ([]Reading, error) {
	cutoff := models.DateOf(f.Now()).AddDate(0, 0, -days)

	var out []Reading
	for _, r := range f.readings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Date.Before(cutoff) || !r.Date.Before(models.DateOf(f.Now())) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if onProgress != nil {
		onProgress(1)
	}
	return out, nil
}
