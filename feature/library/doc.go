// Package library implements the persisted desired-state store: the set
// of content IDs the user wants available offline.
//
// The set is the single durable source of intent. Mutations are atomic
// and idempotent: Add and Remove report whether the set actually changed,
// and only effective mutations dispatch an expedited refresh job. A burst
// of mutations therefore coalesces into a single reconciliation pass at
// the scheduler.
package library
