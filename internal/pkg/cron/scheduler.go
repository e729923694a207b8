package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives the background jobs: the outbox dispatcher, the shift
// reminder sweep and the completion sweep. Each job gets its own goroutine
// and ticker; a failed run is logged and retried on the next tick.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Run: run})
}

// Start launches every registered job. Jobs run once immediately, then on
// each tick, until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	slog.Info("Background jobs started", "count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	slog.Info("Background jobs stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	log := slog.With("job", job.Name, "interval", job.Interval)
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	runJob(ctx, job, log)

	for {
		select {
		case <-ctx.Done():
			log.Info("Job stopped")
			return
		case <-ticker.C:
			runJob(ctx, job, log)
		}
	}
}

func runJob(ctx context.Context, job Job, log *slog.Logger) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		log.Error("Job run failed", "error", err, "elapsed", time.Since(start))
		return
	}
	log.Debug("Job run finished", "elapsed", time.Since(start))
}

// RunOnce executes every registered job a single time, synchronously, and
// reports all failures. Lets tests and one-shot maintenance invocations
// drive the jobs without tickers.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	var errs []error
	for _, job := range jobs {
		if err := job.Run(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}
