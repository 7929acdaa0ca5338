package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sound-sync/core/storage"
	libsync "sound-sync/core/sync"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

// Catalog resolves content IDs to segment paths and serves authoritative
// content hashes, backed by a manifest object in the remote bucket. The
// decoded manifest is cached with a TTL; concurrent refreshes are
// collapsed with singleflight so a burst of passes fetches it once.
type Catalog struct {
	client storage.Client
	bucket string
	object string
	ttl    time.Duration

	mu    sync.RWMutex
	idx   *index
	built time.Time
	sf    singleflight.Group
}

// New creates a catalog over the given bucket.
func New(client storage.Client, bucket string, cfg Config) *Catalog {
	return &Catalog{
		client: client,
		bucket: bucket,
		object: cfg.ManifestObject,
		ttl:    time.Duration(cfg.CacheTTLSeconds) * time.Second,
	}
}

// Resolve returns the segment paths for a content ID at the given
// bitrate. An ID absent from the catalog is a resolution failure; the
// caller aborts its pass rather than committing a partial resolution.
func (c *Catalog) Resolve(ctx context.Context, id libsync.ContentID, bitrate int) ([]libsync.SegmentPath, error) {
	idx, err := c.getIndex(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.ids[id]; !ok {
		return nil, fmt.Errorf("catalog: unknown content %q", id)
	}
	return []libsync.SegmentPath{libsync.PathFor(id, bitrate)}, nil
}

// Hashes returns the authoritative hash for each requested path that the
// manifest knows. Paths without a manifest entry are simply absent from
// the result; the engine treats absence as "must fetch".
func (c *Catalog) Hashes(ctx context.Context, paths []libsync.SegmentPath) (map[libsync.SegmentPath]libsync.ContentHash, error) {
	idx, err := c.getIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[libsync.SegmentPath]libsync.ContentHash, len(paths))
	for _, p := range paths {
		if h, ok := idx.hashes[p]; ok {
			out[p] = h
		}
	}
	return out, nil
}

// Invalidate drops the cached manifest so the next lookup refetches.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.idx = nil
	c.mu.Unlock()
}

// getIndex returns the cached manifest index, refreshing it when expired.
// Singleflight prevents a refresh stampede.
func (c *Catalog) getIndex(ctx context.Context) (*index, error) {
	c.mu.RLock()
	idx, built := c.idx, c.built
	c.mu.RUnlock()

	if idx != nil && c.ttl > 0 && time.Since(built) <= c.ttl {
		return idx, nil
	}

	result, err, _ := c.sf.Do("manifest", func() (any, error) {
		// Double-check after winning the singleflight slot.
		c.mu.RLock()
		idx, built := c.idx, c.built
		c.mu.RUnlock()
		if idx != nil && c.ttl > 0 && time.Since(built) <= c.ttl {
			return idx, nil
		}

		fresh, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.idx = fresh
		c.built = time.Now()
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*index), nil
}

func (c *Catalog) fetch(ctx context.Context) (*index, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, c.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch manifest: %w", err)
	}
	defer obj.Close()

	idx, err := parseManifest(obj)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return idx, nil
}
