// ABOUTME: Repository interface for readiness data storage.
// ABOUTME: Date-keyed upsert/get/range contract for metrics and scores.
package storage

import (
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Repository defines the storage interface for readiness data.
// This interface allows swapping implementations (e.g., for testing).
// All operations key records by calendar date; upserts never create a
// second record for an existing date.
type Repository interface {
	// Metrics operations
	UpsertMetrics(m *models.HealthMetrics) (*models.HealthMetrics, error)
	GetMetrics(date time.Time) (*models.HealthMetrics, error)
	GetMetricsRange(days int) ([]*models.HealthMetrics, error)
	DeleteMetrics(date time.Time) error

	// Score operations
	UpsertScore(s *models.ReadinessScore) (*models.ReadinessScore, error)
	GetScore(date time.Time) (*models.ReadinessScore, error)
	GetScoreRange(days int) ([]*models.ReadinessScore, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// ErrNotFound is returned when no record exists for the requested date.
// Defined as a simple sentinel so callers can distinguish absence from
// storage failure.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }
