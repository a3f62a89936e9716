package queue

import (
	"log/slog"
	"time"
)

// WorkerOption is a functional option for configuring a worker
type WorkerOption func(*workerOptions)

type workerOptions struct {
	queues       []string
	pollInterval time.Duration
	backoff      BackoffFunc
	backoffSet   bool
	promote      bool
	logger       *slog.Logger
}

// WithQueues sets which queues the worker should pull from
func WithQueues(queues ...string) WorkerOption {
	return func(o *workerOptions) {
		if len(queues) > 0 {
			o.queues = queues
		}
	}
}

// WithPollInterval sets how often the worker checks for new jobs.
// Unless overridden with WithBackoff, the retry delay unit follows it.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.pollInterval = d
			if !o.backoffSet {
				o.backoff = Exponential(d)
			}
		}
	}
}

// WithBackoff replaces the default exponential backoff
func WithBackoff(b BackoffFunc) WorkerOption {
	return func(o *workerOptions) {
		if b != nil {
			o.backoff = b
			o.backoffSet = true
		}
	}
}

// WithoutPromotion disables the pre-pop sweep of the delayed set.
// Use it when a dedicated Promoter process owns promotion for the store.
func WithoutPromotion() WorkerOption {
	return func(o *workerOptions) {
		o.promote = false
	}
}

// WithWorkerLogger sets the logger for the worker
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(o *workerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
