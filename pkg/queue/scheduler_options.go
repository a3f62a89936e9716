package queue

import (
	"log/slog"
	"time"
)

// SchedulerOption is a functional option for configuring a Scheduler
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	checkInterval time.Duration
	logger        *slog.Logger
}

// WithCheckInterval sets how often the scheduler checks for due jobs
func WithCheckInterval(d time.Duration) SchedulerOption {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.checkInterval = d
		}
	}
}

// WithSchedulerLogger sets the logger for the scheduler
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(o *schedulerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// SchedulerJobOption is a functional option for a registered periodic job
type SchedulerJobOption func(*schedulerJobOptions)

type schedulerJobOptions struct {
	queue       string
	maxAttempts int
}

// WithJobQueue routes the periodic job to a specific queue
func WithJobQueue(queue string) SchedulerJobOption {
	return func(o *schedulerJobOptions) {
		if queue != "" {
			o.queue = queue
		}
	}
}

// WithJobMaxAttempts overrides the attempt budget for the periodic job
func WithJobMaxAttempts(n int) SchedulerJobOption {
	return func(o *schedulerJobOptions) {
		if n >= 1 && n <= 10 {
			o.maxAttempts = n
		}
	}
}
