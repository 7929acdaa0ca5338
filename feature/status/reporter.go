package status

import (
	"context"
	"sync"
	"time"

	libsync "sound-sync/core/sync"
)

// Reporter keeps the most recent pass report for host visibility. The
// engine publishes once per pass, best effort.
type Reporter struct {
	mu       sync.RWMutex
	last     *libsync.PassReport
	reported time.Time
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Publish stores the report as the currently visible status.
func (r *Reporter) Publish(ctx context.Context, report *libsync.PassReport) error {
	r.mu.Lock()
	r.last = report
	r.reported = time.Now()
	r.mu.Unlock()
	return nil
}

// Snapshot returns the last report and when it was published. The report
// is nil until the first pass completes.
func (r *Reporter) Snapshot() (*libsync.PassReport, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.reported
}
