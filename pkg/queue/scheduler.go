package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingChecker is an optional Queue capability the Scheduler uses to
// avoid enqueueing a periodic job while a previous instance is still
// pending. Both MemoryQueue and RedisQueue implement it.
type PendingChecker interface {
	HasPending(ctx context.Context, queueName, jobType string) (bool, error)
}

// Scheduler converts Schedule definitions into jobs at runtime. It only
// creates jobs; execution still belongs to workers holding a
// NewPeriodicHandler for the job name.
type Scheduler struct {
	queue    Queue
	jobs     map[string]*periodicJob
	mu       sync.RWMutex
	interval time.Duration
	logger   *slog.Logger
}

// periodicJob holds configuration for a registered periodic job.
type periodicJob struct {
	name            string
	schedule        Schedule
	queue           string
	maxAttempts     int
	lastScheduledAt *time.Time
}

// NewScheduler creates a periodic job scheduler over the given store.
func NewScheduler(q Queue, opts ...SchedulerOption) (*Scheduler, error) {
	if q == nil {
		return nil, ErrQueueNil
	}

	options := &schedulerOptions{
		checkInterval: 30 * time.Second,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Scheduler{
		queue:    q,
		jobs:     make(map[string]*periodicJob),
		interval: options.checkInterval,
		logger:   options.logger,
	}, nil
}

// AddJob registers a periodic job under a unique name.
func (s *Scheduler) AddJob(name string, schedule Schedule, opts ...SchedulerJobOption) error {
	if schedule == nil {
		return ErrInvalidSchedule
	}

	jobOpts := &schedulerJobOptions{
		queue:       DefaultQueueName,
		maxAttempts: DefaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(jobOpts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return ErrJobAlreadyRegistered
	}

	s.jobs[name] = &periodicJob{
		name:        name,
		schedule:    schedule,
		queue:       jobOpts.queue,
		maxAttempts: jobOpts.maxAttempts,
	}

	s.logger.Info("registered periodic job",
		slog.String("job_name", name),
		slog.String("schedule", schedule.String()))

	return nil
}

// Start begins the periodic check loop. It blocks until ctx is
// cancelled and returns ctx.Err().
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.RLock()
	jobCount := len(s.jobs)
	s.mu.RUnlock()

	if jobCount == 0 {
		return ErrSchedulerNotConfigured
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Check immediately on start, then on every tick.
	s.checkJobs(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.checkJobs(ctx)
		}
	}
}

// checkJobs enqueues every registered job that is due.
func (s *Scheduler) checkJobs(ctx context.Context) {
	s.mu.RLock()
	jobs := make([]*periodicJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.RUnlock()

	now := time.Now()

	for _, job := range jobs {
		if err := s.scheduleIfDue(ctx, job, now); err != nil {
			s.logger.Error("failed to schedule periodic job",
				slog.String("job_name", job.name),
				slog.String("error", err.Error()))
		}
	}
}

// scheduleIfDue enqueues one instance of the job when its schedule says
// so and no earlier instance is still pending. The first check only arms
// the schedule; the first instance is created once the schedule elapses.
func (s *Scheduler) scheduleIfDue(ctx context.Context, job *periodicJob, now time.Time) error {
	if job.lastScheduledAt == nil {
		s.updateJobState(job.name, &now)
		return nil
	}

	nextRun := job.schedule.Next(*job.lastScheduledAt)
	if nextRun.After(now) {
		return nil
	}

	if checker, ok := s.queue.(PendingChecker); ok {
		pending, err := checker.HasPending(ctx, job.queue, job.name)
		if err != nil {
			return fmt.Errorf("failed to check pending state: %w", err)
		}
		if pending {
			s.updateJobState(job.name, &now)
			s.logger.Debug("periodic job already pending",
				slog.String("job_name", job.name))
			return nil
		}
	}

	if err := s.queue.Push(ctx, &Job{
		ID:          uuid.New(),
		Queue:       job.queue,
		Type:        job.name,
		Payload:     nil, // periodic jobs carry no payload
		MaxAttempts: job.maxAttempts,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("failed to enqueue periodic job: %w", err)
	}

	s.updateJobState(job.name, &nextRun)

	s.logger.Info("created periodic job",
		slog.String("job_name", job.name),
		slog.Time("scheduled_for", nextRun))

	return nil
}

func (s *Scheduler) updateJobState(name string, scheduledAt *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[name]; ok {
		j.lastScheduledAt = scheduledAt
	}
}

// RemoveJob removes a periodic job from the scheduler.
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.jobs, name)

	s.logger.Info("removed periodic job",
		slog.String("job_name", name))
}

// ListJobs returns the names of all registered periodic jobs.
func (s *Scheduler) ListJobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}
