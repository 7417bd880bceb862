package ui

import (
	"sync"

	logger "github.com/sirupsen/logrus"
)

// ProgressLogger renders migration progress as one log line per settled
// item. Increments arrive from concurrently-settling completion handlers,
// so the counter is mutex-guarded.
type ProgressLogger struct {
	mutex sync.Mutex
	total int
	done  int
}

// NewProgressLogger creates a new ProgressLogger.
func NewProgressLogger() *ProgressLogger {
	return &ProgressLogger{}
}

// Start begins a new progress run of the given total.
func (it *ProgressLogger) Start(total int) {
	it.mutex.Lock()
	defer it.mutex.Unlock()
	it.total = total
	it.done = 0
	if total > 0 {
		logger.Infof("Migrating 0/%d...", total)
	}
}

// Increment records one settled item.
func (it *ProgressLogger) Increment() {
	it.mutex.Lock()
	defer it.mutex.Unlock()
	it.done++
	logger.Infof("Migrating %d/%d...", it.done, it.total)
}

// Stop ends the run. Safe to call even when Start never saw a nonzero
// total.
func (it *ProgressLogger) Stop() {
	it.mutex.Lock()
	defer it.mutex.Unlock()
	if it.total > 0 {
		logger.Infof("Done: %d/%d items settled", it.done, it.total)
	}
}
