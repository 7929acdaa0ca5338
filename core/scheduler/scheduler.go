package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome is the tri-state result of one job run. It drives the retry
// policy: Success ends the run, Retry schedules a backed-off re-run, Fail
// is terminal and only logged.
type Outcome int

const (
	Success Outcome = iota
	Retry
	Fail
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Retry:
		return "retry"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Job is the unit of work executed by the scheduler. The expedited flag
// reflects whether any submission since the last run asked for expedited
// handling; jobs forward it to the commands they issue.
type Job func(ctx context.Context, expedited bool) Outcome

// jobState tracks the single-flight discipline for one job name. The
// generation counter is bumped on every submission; a run that finishes
// while the generation has moved on triggers exactly one follow-up run,
// which is how bursts of submissions coalesce.
type jobState struct {
	gen       uint64
	expedited bool
	running   bool
	wake      chan struct{}
}

// Scheduler executes named jobs with at most one instance per name queued
// or running at any time. Submissions replace a pending instance and never
// interrupt a running one. Runs wait for network connectivity and retry
// with exponential backoff on Outcome=Retry.
type Scheduler struct {
	logger *zap.Logger
	online Connectivity

	baseDelay     time.Duration
	maxDelay      time.Duration
	maxAttempts   int
	probeInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	jobs   map[string]Job
	states map[string]*jobState
}

// New creates a scheduler from the given config. Close must be called to
// release it.
func New(logger *zap.Logger, online Connectivity, cfg Config) *Scheduler {
	base := time.Duration(cfg.RetryBaseSeconds) * time.Second
	if base <= 0 {
		base = 10 * time.Second
	}
	max := time.Duration(cfg.RetryMaxSeconds) * time.Second
	if max < base {
		max = base
	}
	probe := time.Duration(cfg.ProbeIntervalSeconds) * time.Second
	if probe <= 0 {
		probe = 15 * time.Second
	}
	if online == nil {
		online = AlwaysOnline{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger:        logger,
		online:        online,
		baseDelay:     base,
		maxDelay:      max,
		maxAttempts:   cfg.RetryMaxAttempts,
		probeInterval: probe,
		ctx:           ctx,
		cancel:        cancel,
		jobs:          make(map[string]Job),
		states:        make(map[string]*jobState),
	}
}

// Register binds a job function to a name. Must be called before the first
// Submit for that name.
func (s *Scheduler) Register(name string, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[name] = job
}

// Submit schedules a run of the named job. If an instance is pending but
// not started, this submission supersedes it; if one is running, it
// finishes uninterrupted and a single follow-up run picks up the latest
// state. Expedited submissions also cut short any backoff or offline wait.
func (s *Scheduler) Submit(name string, expedited bool) {
	s.mu.Lock()
	job, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("submit for unregistered job", zap.String("job", name))
		return
	}
	st := s.states[name]
	if st == nil {
		st = &jobState{wake: make(chan struct{}, 1)}
		s.states[name] = st
	}
	st.gen++
	if expedited {
		st.expedited = true
	}
	start := !st.running
	if start {
		st.running = true
		s.wg.Add(1)
	}
	s.mu.Unlock()

	select {
	case st.wake <- struct{}{}:
	default:
	}
	if start {
		go s.runLoop(name, job, st)
	}
}

// Close stops accepting work and waits for running jobs to finish their
// current pass.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) runLoop(name string, job Job, st *jobState) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		gen := st.gen
		expedited := st.expedited
		st.expedited = false
		s.mu.Unlock()

		// Drain any wake token left by the submissions this run absorbs,
		// so only later submissions cut waits short.
		select {
		case <-st.wake:
		default:
		}

		s.runOnce(name, job, st, expedited)

		s.mu.Lock()
		if st.gen == gen || s.ctx.Err() != nil {
			st.running = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// runOnce executes the job until it succeeds, fails terminally, exhausts
// the retry budget, or the scheduler shuts down.
func (s *Scheduler) runOnce(name string, job Job, st *jobState, expedited bool) {
	attempt := 0
	for {
		if !s.waitOnline(st) {
			return
		}

		out := job(s.ctx, expedited)
		switch out {
		case Success:
			return
		case Fail:
			s.logger.Error("job failed terminally", zap.String("job", name))
			return
		case Retry:
			attempt++
			if s.maxAttempts > 0 && attempt >= s.maxAttempts {
				s.logger.Warn("job retry budget exhausted",
					zap.String("job", name),
					zap.Int("attempts", attempt))
				return
			}
			delay := s.backoff(attempt)
			s.logger.Info("job retry scheduled",
				zap.String("job", name),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			if !s.wait(delay, st) {
				return
			}
		}
	}
}

// backoff returns the exponential delay for the given attempt, capped at
// the configured maximum.
func (s *Scheduler) backoff(attempt int) time.Duration {
	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			return s.maxDelay
		}
	}
	if delay > s.maxDelay {
		return s.maxDelay
	}
	return delay
}

// waitOnline blocks until the connectivity check passes. Returns false on
// shutdown.
func (s *Scheduler) waitOnline(st *jobState) bool {
	for {
		if s.ctx.Err() != nil {
			return false
		}
		if s.online.Online(s.ctx) {
			return true
		}
		timer := time.NewTimer(s.probeInterval)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return false
		case <-st.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// wait sleeps for the given delay. A new submission wakes it early.
// Returns false on shutdown.
func (s *Scheduler) wait(delay time.Duration, st *jobState) bool {
	timer := time.NewTimer(delay)
	select {
	case <-s.ctx.Done():
		timer.Stop()
		return false
	case <-st.wake:
		timer.Stop()
		return true
	case <-timer.C:
		return true
	}
}
