// Package queue provides a durable background job queue with bounded retries,
// deterministic exponential backoff, and dead-letter isolation.
//
// The package is organised around four main components:
//
//   - Enqueuer  — serializes payloads and pushes jobs onto a named queue
//   - Worker    — polls for jobs and dispatches them to registered Handlers
//   - Promoter  — moves delayed jobs back to the pending list once due
//   - Scheduler — turns Schedule definitions into periodic jobs at runtime
//
// Components interact only through the Queue contract, keeping the business
// logic decoupled from persistence. Two implementations ship with the
// package: MemoryQueue for tests and local development, and RedisQueue
// backed by Redis lists, hashes, and sorted sets.
//
// # Delivery semantics
//
// The queue is at-least-once. A popped job has no durable in-flight record;
// if the worker process dies between Pop and the closing Delete, Release,
// or Fail call, that job is lost. There is deliberately no acknowledgment
// or visibility-timeout protocol layered on top.
//
// # Usage
//
// Enqueue a one-time job:
//
//	import (
//	    "context"
//
//	    "github.com/dmitrymomot/queuekit/pkg/queue"
//	)
//
//	type SendEmailPayload struct {
//	    UserID int64
//	}
//
//	func example(q queue.Queue) error {
//	    e, err := queue.NewEnqueuer(q)
//	    if err != nil {
//	        return err
//	    }
//
//	    _, err = e.Enqueue(context.Background(),
//	        SendEmailPayload{UserID: 42},
//	        queue.WithMaxAttempts(5),
//	    )
//	    return err
//	}
//
// Process it:
//
//	w, _ := queue.NewWorker(q, queue.WithPollInterval(time.Second))
//	_ = w.RegisterHandler(queue.NewTaskHandler(func(ctx context.Context, p SendEmailPayload) error {
//	    return mailer.Send(ctx, p.UserID)
//	}))
//	_ = w.Start(ctx) // blocks until ctx is cancelled or the store fails
//
// # Error Handling
//
// Package-level sentinel errors (e.g. ErrQueueEmpty, ErrCorruptJob) signal
// violations of business invariants and can be checked with errors.Is.
// Handler errors are absorbed by the Worker and drive the retry policy;
// store errors are fatal and propagate out of Worker.Start.
package queue
