// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Config holds scheduler configuration
type Config struct {
	Enabled    bool
	JobTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		JobTimeout: 2 * time.Minute,
	}
}

// Scheduler runs registered jobs on their cron specs.
// A job still running when its next tick fires is skipped for that tick.
type Scheduler struct {
	config Config
	cron   *cron.Cron
	logger *zap.Logger

	mu        sync.Mutex
	isRunning bool
	entries   map[string]cron.EntryID
}

// New creates a scheduler. Jobs are registered with Register before Start.
func New(config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}
	cronLogger := cronLogAdapter{logger.Named("cron").Sugar()}
	return &Scheduler{
		config: config,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Register schedules job on a standard five-field cron spec
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}
	id, err := s.cron.AddFunc(spec, func() { s.runJob(job) })
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, spec, err)
	}
	s.entries[job.Name()] = id

	s.logger.Info("Job registered", zap.String("job", job.Name()), zap.String("schedule", spec))
	return nil
}

// Start starts the cron loop. Disabled schedulers do nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Scheduler disabled")
		return
	}
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started",
		zap.Int("jobs", len(s.entries)),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
}

// Stop stops scheduling and waits for running jobs until ctx expires
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// RunNow runs a registered job immediately, outside the cron loop
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	s.cron.Entry(id).WrappedJob.Run()
	return nil
}

// NextRun returns the next activation time of a registered job
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

func (s *Scheduler) runJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("Job failed",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Job completed",
		zap.String("job", job.Name()),
		zap.Duration("duration", time.Since(start)),
	)
}

// cronLogAdapter routes cron's own messages to zap
type cronLogAdapter struct {
	logger *zap.SugaredLogger
}

func (l cronLogAdapter) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
