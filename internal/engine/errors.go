// ABOUTME: Sentinel errors for the readiness engine.
// ABOUTME: Baseline unavailability is a domain value, never an error here.
package engine

import "errors"

var (
	// ErrNoData means the health source could not supply HRV even after
	// the 24-hour fallback window; today's cycle fails without persisting.
	ErrNoData = errors.New("no readiness data available")

	// ErrHistoricalDataMissing means a recalculation was requested for a
	// date with no stored metrics.
	ErrHistoricalDataMissing = errors.New("historical data missing")

	// ErrHistoricalDataIncomplete means stored metrics exist for the date
	// but lack a valid HRV reading, so no score can be computed.
	ErrHistoricalDataIncomplete = errors.New("historical data incomplete")
)
