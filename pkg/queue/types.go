package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultQueueName is used when no queue is specified.
const DefaultQueueName = "default"

// DefaultMaxAttempts bounds retries for jobs that do not override it.
const DefaultMaxAttempts = 3

// Job is a unit of deferred work together with its retry bookkeeping.
// The struct is the durable representation; the business logic lives in
// the Handler registered for the job's Type.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	Queue       string          `json:"queue"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IncrementAttempts bumps the attempt counter. Called by the Worker
// immediately before each execution attempt, never by handlers.
func (j *Job) IncrementAttempts() {
	j.Attempts++
}

// Exhausted reports whether the job has used up all of its attempts.
// An exhausted job that fails must be dead-lettered, never retried.
func (j *Job) Exhausted() bool {
	return j.Attempts >= j.MaxAttempts
}

// DeadLetter is the terminal record of a job that exhausted all retries
// or carried a payload that could not be trusted. Immutable once written;
// retained for inspection, never re-processed automatically.
type DeadLetter struct {
	JobID       uuid.UUID       `json:"job_id"`
	Queue       string          `json:"queue"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Error       string          `json:"error"`
	FailedAt    time.Time       `json:"failed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
