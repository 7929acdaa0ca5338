// Package sync implements the content reconciliation engine that keeps
// the locally cached segment set converged to the user's desired set.
//
// One pass compares three inputs: the desired set (the only durable
// record of intent), the authoritative catalog (paths and content hashes
// per segment), and the local download index (what is downloaded or
// queued, with the hash each entry was stored under). From the diff it
// emits the minimal add/remove command set to the content store and then
// resumes paused transfers.
//
// # Convergence rules
//
//   - A local record is satisfied only if its path is still desired and
//     its stored hash equals the authoritative hash exactly.
//   - Any mismatch, including a missing authoritative hash, means the
//     content changed: the record is removed and, if still desired,
//     re-added in the same pass, remove always before add. Content is
//     never patched in place.
//   - Commands are fire and forget. An individual command failure is
//     logged and the next pass re-diffs and self-heals.
//
// # Failure taxonomy
//
// Gate, catalog, and index failures abort the pass with a retryable
// outcome and commit no commands. A desired-set read failure is terminal:
// it indicates corrupted local state, not connectivity. The pass never
// surfaces errors to the user; the scheduler owns retry.
//
// # Usage
//
//	engine := sync.NewEngine(store, catalog, index, content, gate, reporter, logger)
//	report, outcome := engine.Run(ctx, 128, false)
package sync
