package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Enqueuer is the producer-facing surface: it serializes payloads,
// assigns ids, and pushes jobs onto a named queue. Producers observe
// either the returned id or a propagated store error; retry and backoff
// internals stay invisible to them.
type Enqueuer struct {
	queue           Queue
	defaultQueue    string
	defaultAttempts int
}

// NewEnqueuer creates a new Enqueuer on top of the given store.
func NewEnqueuer(q Queue, opts ...EnqueuerOption) (*Enqueuer, error) {
	if q == nil {
		return nil, ErrQueueNil
	}

	options := &enqueuerOptions{
		defaultQueue:    DefaultQueueName,
		defaultAttempts: DefaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Enqueuer{
		queue:           q,
		defaultQueue:    options.defaultQueue,
		defaultAttempts: options.defaultAttempts,
	}, nil
}

// Enqueue adds a new job to the queue and returns its id.
func (e *Enqueuer) Enqueue(ctx context.Context, payload any, opts ...EnqueueOption) (uuid.UUID, error) {
	if payload == nil {
		return uuid.Nil, ErrPayloadNil
	}

	options := &enqueueOptions{
		queue:       e.defaultQueue,
		maxAttempts: e.defaultAttempts,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.maxAttempts < 1 || options.maxAttempts > 10 {
		return uuid.Nil, ErrInvalidMaxAttempts
	}

	job, err := buildJob(payload, options)
	if err != nil {
		return uuid.Nil, err
	}

	if err := e.queue.Push(ctx, job); err != nil {
		return uuid.Nil, fmt.Errorf("failed to push job %q to queue %q: %w", job.Type, job.Queue, err)
	}

	return job.ID, nil
}

// buildJob constructs a Job from payload and options.
func buildJob(payload any, options *enqueueOptions) (*Job, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload of type %T: %v", ErrPayloadMarshal, payload, err)
	}

	jobType := options.jobType
	if jobType == "" {
		jobType = qualifiedStructName(payload)
	}

	return &Job{
		ID:          uuid.New(),
		Queue:       options.queue,
		Type:        jobType,
		Payload:     payloadBytes,
		Attempts:    0,
		MaxAttempts: options.maxAttempts,
		CreatedAt:   time.Now(),
	}, nil
}
