// ABOUTME: Per-date mutual exclusion for score writes.
// ABOUTME: Guarantees at most one in-flight write per calendar date.
package engine

import (
	"sync"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// dateLocks hands out one mutex per calendar date so concurrent scoring of
// the same date serializes while different dates proceed independently.
type dateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a date and returns its unlock func.
func (d *dateLocks) lock(date time.Time) func() {
	key := models.DateKey(date)

	d.mu.Lock()
	m, ok := d.locks[key]
	if !ok {
		m = &sync.Mutex{}
		d.locks[key] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
