package sync

import (
	"context"
	"time"

	"sound-sync/core/scheduler"

	"go.uber.org/zap"
)

// Engine reconciles the locally downloaded segment set against the
// desired set and the authoritative catalog. It computes the minimal
// add/remove command set and issues it to the content store; it never
// mutates the desired set or the download index itself.
type Engine struct {
	desired DesiredStore
	catalog Catalog
	index   DownloadIndex
	content ContentStore
	gate    Gate
	status  StatusReporter
	logger  *zap.Logger
}

// NewEngine wires the engine's collaborators. status may be nil.
func NewEngine(desired DesiredStore, catalog Catalog, index DownloadIndex, content ContentStore, gate Gate, status StatusReporter, logger *zap.Logger) *Engine {
	return &Engine{
		desired: desired,
		catalog: catalog,
		index:   index,
		content: content,
		gate:    gate,
		status:  status,
		logger:  logger,
	}
}

// Run executes one reconciliation pass for the given bitrate.
//
// The pass runs its steps strictly sequentially against one consistent
// snapshot: gate check, desired-set read, path resolution, hash fetch,
// index diff, gap fill, resume. For a path whose content changed, the
// remove is always issued before the corresponding add within the same
// pass.
//
// Outcome classification: gate, catalog, and index failures are transient
// (Retry); a desired-set read failure is a local invariant violation
// (Fail); individual command failures are logged and left for the next
// pass to self-heal.
func (e *Engine) Run(ctx context.Context, bitrate int, expedited bool) (*PassReport, scheduler.Outcome) {
	report := &PassReport{Started: time.Now(), Bitrate: bitrate}
	// Published exactly once per run, whatever the outcome; failed passes
	// surface their partial counts.
	defer e.publish(ctx, report)

	eligible, err := e.gate.Check(ctx)
	if err != nil {
		e.logger.Warn("entitlement check failed", zap.Error(err))
		return report, scheduler.Retry
	}
	if !eligible {
		report.Skipped = true
		e.logger.Debug("not entitled, skipping pass")
		return report, scheduler.Success
	}

	ids, err := e.desired.Get(ctx)
	if err != nil {
		e.logger.Error("desired set unreadable", zap.Error(err))
		return report, scheduler.Fail
	}
	report.Desired = len(ids)

	// Resolve every desired ID before committing to anything; a partial
	// resolution is never acted on.
	want := make(map[SegmentPath]struct{})
	var order []SegmentPath
	for _, id := range ids {
		paths, err := e.catalog.Resolve(ctx, id, bitrate)
		if err != nil {
			e.logger.Warn("catalog resolve failed",
				zap.String("content_id", string(id)), zap.Error(err))
			return report, scheduler.Retry
		}
		for _, p := range paths {
			if _, seen := want[p]; !seen {
				want[p] = struct{}{}
				order = append(order, p)
			}
		}
	}
	report.Resolved = len(want)

	// Only fetch hashes for paths we actually want; an empty desired set
	// makes no remote calls.
	var hashes map[SegmentPath]ContentHash
	if len(order) > 0 {
		hashes, err = e.catalog.Hashes(ctx, order)
		if err != nil {
			e.logger.Warn("hash fetch failed", zap.Error(err))
			return report, scheduler.Retry
		}
	}

	// Diff the local index against the desired snapshot. A record
	// survives only if its path is desired and its stored hash matches
	// the authoritative one exactly; a missing authoritative hash counts
	// as changed, favoring re-fetch over staleness.
	remaining := make(map[SegmentPath]struct{}, len(want))
	for p := range want {
		remaining[p] = struct{}{}
	}

	cur, err := e.index.Scan(ctx)
	if err != nil {
		e.logger.Warn("index scan failed", zap.Error(err))
		return report, scheduler.Retry
	}
	defer cur.Close()

	for {
		rec, ok, err := cur.Next()
		if err != nil {
			e.logger.Warn("index scan failed", zap.Error(err))
			return report, scheduler.Retry
		}
		if !ok {
			break
		}

		_, desired := want[rec.Path]
		if desired && hashes[rec.Path] != "" && rec.Hash == hashes[rec.Path] {
			delete(remaining, rec.Path)
			report.Satisfied++
			continue
		}

		if err := e.content.EnqueueRemove(ctx, rec.Path, expedited); err != nil {
			e.logger.Warn("remove command failed",
				zap.String("path", string(rec.Path)), zap.Error(err))
			continue
		}
		report.Removed++
	}

	// Fill the gaps in resolution order so command output is stable.
	for _, p := range order {
		if _, missing := remaining[p]; !missing {
			continue
		}
		if err := e.content.EnqueueAdd(ctx, p, hashes[p], expedited); err != nil {
			e.logger.Warn("add command failed",
				zap.String("path", string(p)), zap.Error(err))
			continue
		}
		report.Added++
	}

	if err := e.content.ResumeAll(ctx); err != nil {
		e.logger.Warn("resume command failed", zap.Error(err))
	}

	e.logger.Info("reconciliation pass complete",
		zap.Int("desired", report.Desired),
		zap.Int("resolved", report.Resolved),
		zap.Int("satisfied", report.Satisfied),
		zap.Int("removed", report.Removed),
		zap.Int("added", report.Added))
	return report, scheduler.Success
}

// publish sends the visibility update. Best effort: a reporting failure
// never changes the pass outcome.
func (e *Engine) publish(ctx context.Context, report *PassReport) {
	if e.status == nil {
		return
	}
	if err := e.status.Publish(ctx, report); err != nil {
		e.logger.Warn("status publish failed", zap.Error(err))
	}
}
