package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Queue is the durable store contract shared by producers and workers.
// Implementations must make Pop atomic: no two concurrent callers may
// ever receive the same job id. Operations against ids that no longer
// exist are no-ops, matching the best-effort semantics of a queue that
// tolerates crash-induced loss.
type Queue interface {
	// Push appends the job to the tail of its named pending queue.
	// Safe for concurrent producers; the job id is assigned by the caller.
	Push(ctx context.Context, job *Job) error

	// Pop atomically removes and returns the head of the named pending
	// queue. Returns ErrQueueEmpty when no job is available. A job whose
	// stored record cannot be decoded is returned partially populated
	// together with an error wrapping ErrCorruptJob.
	Pop(ctx context.Context, queueName string) (*Job, error)

	// Delete permanently discards all durable state for a job id.
	Delete(ctx context.Context, id uuid.UUID) error

	// Release re-admits an in-flight job for future processing, persisting
	// its current attempt count. A zero delay places it at the tail of the
	// pending queue; a positive delay parks it in the delayed set until
	// now+delay.
	Release(ctx context.Context, job *Job, delay time.Duration) error

	// Fail moves the job snapshot plus the failure reason into the
	// dead-letter store and removes it from pending/delayed state.
	Fail(ctx context.Context, job *Job, reason string) error

	// PromoteDue moves every delayed job whose due time is at or before
	// now back to the tail of the named pending queue and reports how
	// many were promoted.
	PromoteDue(ctx context.Context, queueName string, now time.Time) (int, error)
}

// DeadLetterStore exposes read access to permanently failed jobs.
// Dead letters are visible only through this interface; nothing in the
// package re-processes them.
type DeadLetterStore interface {
	// DeadLetter returns the entry for the given original job id, or nil
	// when the job was never dead-lettered.
	DeadLetter(ctx context.Context, jobID uuid.UUID) (*DeadLetter, error)

	// DeadLetters returns all dead-letter entries.
	DeadLetters(ctx context.Context) ([]DeadLetter, error)
}
