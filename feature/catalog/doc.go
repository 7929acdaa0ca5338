// Package catalog implements the authoritative content catalog client.
//
// The catalog is published as a single manifest JSON object in the remote
// content bucket. It lists every sound, its quality tiers, and the content
// hash of each segment. Segment paths are derived deterministically from
// (content ID, bitrate), so the manifest only needs to carry hashes.
//
// The decoded manifest is cached in memory with a TTL and refreshed with
// stampede protection, mirroring how reconciliation passes are expected to
// cluster around desired-set mutations.
package catalog
