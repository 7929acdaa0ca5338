package sync

import (
	"context"
	"fmt"
	"time"
)

// ContentID is the opaque stable identifier for a sound in the catalog.
type ContentID string

// SegmentPath addresses one quality tier of a sound. It is derived
// deterministically from the content ID and bitrate and doubles as the
// object key under which the segment is stored.
type SegmentPath string

// PathFor derives the segment path for a content ID at the given bitrate.
func PathFor(id ContentID, bitrate int) SegmentPath {
	return SegmentPath(fmt.Sprintf("%s/%d", id, bitrate))
}

// ContentHash identifies a specific version of a segment's bytes as
// reported by the catalog. Content is immutable under a fixed hash; a
// changed hash always means different content, never a patch in place.
type ContentHash string

// DownloadStatus is the lifecycle state of a download record.
type DownloadStatus string

const (
	StatusQueued   DownloadStatus = "queued"
	StatusActive   DownloadStatus = "active"
	StatusComplete DownloadStatus = "complete"
	StatusFailed   DownloadStatus = "failed"
)

// DownloadRecord describes one locally downloaded (or queued) segment as
// reported by the local download index. Records are owned by the content
// store; the engine only observes them.
type DownloadRecord struct {
	Path   SegmentPath
	Hash   ContentHash
	Status DownloadStatus
}

// RecordCursor is a lazy, finite iteration over download records. A fresh
// cursor is produced for every pass so the diff is computed against one
// consistent snapshot.
type RecordCursor interface {
	// Next returns the next record. ok is false once the sequence is
	// exhausted.
	Next() (rec DownloadRecord, ok bool, err error)
	Close() error
}

// DesiredStore is the persisted set of content IDs the user wants
// available offline. It is the only durable record of intent.
type DesiredStore interface {
	Get(ctx context.Context) ([]ContentID, error)
}

// Catalog resolves content IDs to segment paths and supplies the
// authoritative content hash for each path.
type Catalog interface {
	Resolve(ctx context.Context, id ContentID, bitrate int) ([]SegmentPath, error)
	Hashes(ctx context.Context, paths []SegmentPath) (map[SegmentPath]ContentHash, error)
}

// DownloadIndex exposes the current local download state as a lazy cursor.
type DownloadIndex interface {
	Scan(ctx context.Context) (RecordCursor, error)
}

// ContentStore executes transfer commands. Commands are fire and forget;
// the engine never observes their completion and relies on the next pass
// to re-diff whatever actually happened.
type ContentStore interface {
	EnqueueAdd(ctx context.Context, path SegmentPath, hash ContentHash, expedited bool) error
	EnqueueRemove(ctx context.Context, path SegmentPath, expedited bool) error
	ResumeAll(ctx context.Context) error
}

// Gate answers whether reconciliation should act at all. A false answer is
// not an error; the pass becomes a no-op.
type Gate interface {
	Check(ctx context.Context) (bool, error)
}

// StatusReporter receives a best-effort visibility update once per pass.
// Failures are logged by the engine, never propagated.
type StatusReporter interface {
	Publish(ctx context.Context, report *PassReport) error
}

// PassReport summarizes one reconciliation pass.
type PassReport struct {
	Started   time.Time `json:"started"`
	Bitrate   int       `json:"bitrate"`
	Skipped   bool      `json:"skipped"`
	Desired   int       `json:"desired"`
	Resolved  int       `json:"resolved"`
	Satisfied int       `json:"satisfied"`
	Removed   int       `json:"removed"`
	Added     int       `json:"added"`
}
