// Package scheduler provides single-flight execution of named background
// jobs with replace-on-submit coalescing, exponential retry backoff, and
// network-connectivity gating.
//
// # Single-flight
//
// At most one instance of a job name is queued or running at any time. A
// submission while an instance is pending supersedes it; a submission
// while an instance is running never interrupts it. Instead the run
// finishes and exactly one follow-up run starts, so a burst of N
// submissions collapses into at most one pending pass that observes the
// state after all N.
//
// # Retry policy
//
// A job returns one of three outcomes. Success ends the run. Retry
// re-runs the job after an exponential backoff starting at a configured
// base delay, bounded by an optional attempt budget (zero = unbounded).
// Fail is terminal: it is logged and never retried.
//
// # Connectivity
//
// Before every run (including retries) the scheduler waits for the
// configured connectivity probe to pass. With no probe address configured
// the check is a no-op.
//
// # Usage
//
//	sched := scheduler.New(logger, scheduler.ProbeFromConfig(cfg), cfg)
//	sched.Register("refresh", func(ctx context.Context, expedited bool) scheduler.Outcome {
//	    _, out := engine.Run(ctx, bitrate, expedited)
//	    return out
//	})
//	sched.Submit("refresh", true)
package scheduler
