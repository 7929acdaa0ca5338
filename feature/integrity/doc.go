// Package integrity validates the local download state against the files
// actually on disk.
//
// The sync engine trusts the download records; this package is the
// cross-check for when disk and records drift apart (manual deletion,
// partial writes that survived a crash, bit rot).
//
// # Checks Provided
//
//   - Files: Re-hashes every completed segment and reports files that are
//     missing or whose SHA-256 no longer matches the recorded hash.
//   - Orphans: Walks the download directory and reports files no record
//     claims, including abandoned .partial transfers.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/files : Runs the file verification check.
//   - GET /integrity/orphans : Runs the orphan check (supports ?fix=true).
//
// Repair is deliberately indirect: a missing or corrupted file is fixed by
// deleting its record (or the file) and letting the next reconciliation
// pass re-download it.
package integrity
