package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Worker runs the poll-execute-retry loop against a Queue. Several
// workers (in one process or many) may share the same store; Pop is
// required to be atomic, so no two of them ever claim the same job.
//
// The worker absorbs every failure raised by a handler — including
// panics — and turns it into a retry or a dead-letter transition. The
// only errors that escape the loop are store errors: when the queue
// itself is unreachable no further progress is possible and the host
// process is expected to apply its own restart policy.
type Worker struct {
	queue    Queue
	handlers map[string]Handler
	queues   []string
	workerID uuid.UUID
	mu       sync.RWMutex

	pollInterval time.Duration
	backoff      BackoffFunc
	promote      bool
	logger       *slog.Logger
}

// NewWorker creates a worker over the given store. The queue, handlers,
// and logger are always injected; the package keeps no global state.
func NewWorker(q Queue, opts ...WorkerOption) (*Worker, error) {
	if q == nil {
		return nil, ErrQueueNil
	}

	options := &workerOptions{
		queues:       []string{DefaultQueueName},
		pollInterval: time.Second,
		promote:      true,
		logger:       slog.Default(),
	}
	options.backoff = Exponential(options.pollInterval)

	for _, opt := range opts {
		opt(options)
	}

	return &Worker{
		queue:        q,
		handlers:     make(map[string]Handler),
		queues:       options.queues,
		workerID:     uuid.New(),
		pollInterval: options.pollInterval,
		backoff:      options.backoff,
		promote:      options.promote,
		logger:       options.logger,
	}, nil
}

// RegisterHandler registers a single job handler.
func (w *Worker) RegisterHandler(handler Handler) error {
	if handler == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.handlers[handler.Name()] = handler
	return nil
}

// RegisterHandlers registers multiple job handlers.
func (w *Worker) RegisterHandlers(handlers ...Handler) error {
	for _, h := range handlers {
		if err := w.RegisterHandler(h); err != nil {
			return err
		}
	}
	return nil
}

// Start runs the polling loop until ctx is cancelled or the store
// becomes unreachable. It blocks; run it in its own goroutine or via
// Run with an errgroup. Returns nil on cancellation and the store
// error otherwise.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.RLock()
	handlerCount := len(w.handlers)
	w.mu.RUnlock()

	if handlerCount == 0 {
		return ErrNoHandlers
	}

	w.logger.InfoContext(ctx, "worker started",
		slog.String("worker_id", w.workerID.String()),
		slog.Any("queues", w.queues),
		slog.Duration("poll_interval", w.pollInterval))

	for {
		processed, err := w.poll(ctx)
		if err != nil {
			w.logger.ErrorContext(ctx, "worker stopping: job store unreachable",
				slog.String("worker_id", w.workerID.String()),
				slog.String("error", err.Error()))
			return err
		}

		if processed {
			// Drain eagerly while work is available.
			continue
		}

		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "worker stopped",
				slog.String("worker_id", w.workerID.String()))
			return nil
		case <-time.After(w.pollInterval):
		}
	}
}

// Run returns a function suitable for errgroup.Go.
func (w *Worker) Run(ctx context.Context) func() error {
	return func() error {
		return w.Start(ctx)
	}
}

// poll sweeps due delayed jobs, then pops and processes at most one job
// per queue. It reports whether any job was processed; a non-nil error
// means the store is unreachable.
func (w *Worker) poll(ctx context.Context) (bool, error) {
	processed := false

	for _, queueName := range w.queues {
		if ctx.Err() != nil {
			return processed, nil
		}

		if w.promote {
			if n, err := w.queue.PromoteDue(ctx, queueName, time.Now()); err != nil {
				return processed, fmt.Errorf("failed to promote delayed jobs on queue %q: %w", queueName, err)
			} else if n > 0 {
				w.logger.DebugContext(ctx, "promoted delayed jobs",
					slog.String("queue", queueName),
					slog.Int("count", n))
			}
		}

		job, err := w.queue.Pop(ctx, queueName)
		switch {
		case errors.Is(err, ErrQueueEmpty):
			continue
		case errors.Is(err, ErrCorruptJob):
			if job == nil {
				// Nothing to dead-letter; the id itself was unusable.
				w.logger.ErrorContext(ctx, "dropped undecodable job record",
					slog.String("queue", queueName),
					slog.String("error", err.Error()))
				continue
			}
			if dlErr := w.deadLetter(ctx, job, err); dlErr != nil {
				return processed, dlErr
			}
			processed = true
			continue
		case err != nil:
			return processed, fmt.Errorf("failed to pop from queue %q: %w", queueName, err)
		}

		if err := w.process(ctx, job); err != nil {
			return processed, err
		}
		processed = true
	}

	return processed, nil
}

// process executes one claimed job and commits its outcome. The
// returned error is always a store error; handler failures are consumed
// by the retry policy.
func (w *Worker) process(ctx context.Context, job *Job) error {
	job.IncrementAttempts()

	w.logger.InfoContext(ctx, "job started",
		slog.String("worker_id", w.workerID.String()),
		slog.String("job_id", job.ID.String()),
		slog.String("job_type", job.Type),
		slog.String("queue", job.Queue),
		slog.Int("attempt", job.Attempts))

	start := time.Now()
	execErr := w.dispatch(ctx, job)
	duration := time.Since(start)

	if execErr == nil {
		if err := w.queue.Delete(ctx, job.ID); err != nil {
			return fmt.Errorf("failed to delete completed job %s: %w", job.ID, err)
		}

		w.logger.InfoContext(ctx, "job completed",
			slog.String("job_id", job.ID.String()),
			slog.String("job_type", job.Type),
			slog.Int("attempts", job.Attempts),
			slog.Duration("duration", duration))
		return nil
	}

	if errors.Is(execErr, ErrHandlerNotFound) {
		// Retrying cannot help without a handler; park the job where an
		// operator can requeue it after deploying the missing code.
		return w.deadLetter(ctx, job, execErr)
	}

	if !job.Exhausted() {
		delay := w.backoff(job.Attempts)
		if err := w.queue.Release(ctx, job, delay); err != nil {
			return fmt.Errorf("failed to release job %s for retry: %w", job.ID, err)
		}

		w.logger.WarnContext(ctx, "job failed, retrying",
			slog.String("job_id", job.ID.String()),
			slog.String("job_type", job.Type),
			slog.Int("attempt", job.Attempts),
			slog.Int("max_attempts", job.MaxAttempts),
			slog.Duration("retry_in", delay),
			slog.String("error", execErr.Error()))
		return nil
	}

	return w.deadLetter(ctx, job, execErr)
}

// dispatch routes the job to its handler inside a recover boundary so
// one misbehaving job can never terminate the loop.
func (w *Worker) dispatch(ctx context.Context, job *Job) (execErr error) {
	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, job.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			execErr = fmt.Errorf("panic in handler: %v", r)
		}
	}()

	return handler.Handle(ctx, job.Payload)
}

// deadLetter commits a permanent failure: the handler's failure hook
// runs exactly once, then the job moves to the dead-letter store.
func (w *Worker) deadLetter(ctx context.Context, job *Job, cause error) error {
	w.runFailureHook(ctx, job, cause)

	if err := w.queue.Fail(ctx, job, cause.Error()); err != nil {
		return fmt.Errorf("failed to dead-letter job %s: %w", job.ID, err)
	}

	w.logger.ErrorContext(ctx, "job dead-lettered",
		slog.String("job_id", job.ID.String()),
		slog.String("job_type", job.Type),
		slog.String("queue", job.Queue),
		slog.Int("attempts", job.Attempts),
		slog.String("error", cause.Error()))

	return nil
}

// runFailureHook invokes the handler's FailureHook if it has one. Hook
// failures are swallowed and logged, never propagated.
func (w *Worker) runFailureHook(ctx context.Context, job *Job, cause error) {
	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()

	hook, hasHook := handler.(FailureHook)
	if !ok || !hasHook {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			w.logger.ErrorContext(ctx, "panic in failure hook",
				slog.String("job_id", job.ID.String()),
				slog.String("job_type", job.Type),
				slog.Any("panic", r))
		}
	}()

	hook.Failed(ctx, job, cause)
}
