package queue

import "errors"

// Common errors
var (
	// ErrQueueNil is returned when a nil Queue is provided
	ErrQueueNil = errors.New("queue cannot be nil")

	// ErrQueueEmpty is returned by Pop when no job is due on the queue
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrCorruptJob is returned when a stored job cannot be deserialized;
	// retrying cannot help, so the worker dead-letters the job immediately
	ErrCorruptJob = errors.New("job record is corrupt")

	// ErrPayloadNil is returned when attempting to enqueue a nil payload
	ErrPayloadNil = errors.New("payload cannot be nil")

	// ErrPayloadMarshal is returned when payload marshaling fails
	ErrPayloadMarshal = errors.New("failed to marshal payload to JSON")

	// ErrInvalidMaxAttempts is returned when max attempts is outside 1-10
	ErrInvalidMaxAttempts = errors.New("max attempts must be between 1 and 10")

	// ErrNoHandlers is returned when a worker starts with no handlers registered
	ErrNoHandlers = errors.New("no job handlers registered")

	// ErrHandlerNotFound is returned when no handler is registered for a job type
	ErrHandlerNotFound = errors.New("no handler registered for job type")

	// ErrJobAlreadyRegistered is returned when registering a duplicate periodic job
	ErrJobAlreadyRegistered = errors.New("periodic job already registered")

	// ErrInvalidSchedule is returned when a schedule definition is invalid
	ErrInvalidSchedule = errors.New("invalid schedule format")

	// ErrSchedulerNotConfigured is returned when a scheduler starts with no jobs
	ErrSchedulerNotConfigured = errors.New("scheduler has no registered jobs")
)
