package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	libsync "sound-sync/core/sync"
)

// Manifest is the wire format of the catalog manifest object. The remote
// publisher regenerates it whenever sound content changes; a segment's
// hash changes if and only if its bytes changed.
type Manifest struct {
	Sounds []ManifestSound `json:"sounds"`
}

// ManifestSound describes one sound and its per-bitrate segments.
type ManifestSound struct {
	ID       string            `json:"id"`
	Segments []ManifestSegment `json:"segments"`
}

// ManifestSegment carries the authoritative content hash for one quality
// tier.
type ManifestSegment struct {
	Bitrate int    `json:"bitrate"`
	Hash    string `json:"hash"`
}

// index is the decoded manifest rearranged for lookups: which IDs exist,
// and the authoritative hash per derived segment path.
type index struct {
	ids    map[libsync.ContentID]struct{}
	hashes map[libsync.SegmentPath]libsync.ContentHash
}

// parseManifest decodes a manifest stream and builds the lookup index.
func parseManifest(r io.Reader) (*index, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	idx := &index{
		ids:    make(map[libsync.ContentID]struct{}, len(m.Sounds)),
		hashes: make(map[libsync.SegmentPath]libsync.ContentHash),
	}
	for _, s := range m.Sounds {
		id := libsync.ContentID(s.ID)
		idx.ids[id] = struct{}{}
		for _, seg := range s.Segments {
			idx.hashes[libsync.PathFor(id, seg.Bitrate)] = libsync.ContentHash(seg.Hash)
		}
	}
	return idx, nil
}
