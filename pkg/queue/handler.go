package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type (
	// Handler executes the business logic for one job type. Name is the
	// type tag used for dispatch; each handler owns the deserialization
	// of its own payload.
	Handler interface {
		Name() string
		Handle(ctx context.Context, payload json.RawMessage) error
	}

	// FailureHook is implemented by handlers that want to be notified
	// exactly once when a job of their type is dead-lettered. The hook
	// must not fail; panics inside it are recovered and logged by the
	// worker, never propagated.
	FailureHook interface {
		Failed(ctx context.Context, job *Job, err error)
	}

	// TaskHandlerFunc is the typed business logic for one job type.
	TaskHandlerFunc[T any] func(ctx context.Context, payload T) error

	// TaskFailureFunc receives the decoded payload (zero value when the
	// payload itself was undecodable) and the final error.
	TaskFailureFunc[T any] func(ctx context.Context, payload T, err error)
)

// NewTaskHandler creates a Handler whose name is derived from the payload
// type, giving one implementation per job type without reflection-based
// dispatch at execution time.
func NewTaskHandler[T any](handler TaskHandlerFunc[T]) Handler {
	var payload T
	return &taskHandler[T]{
		name:    qualifiedStructName(payload),
		handler: handler,
	}
}

// NewTaskHandlerWithHook creates a Handler that additionally implements
// FailureHook, invoked when a job of this type exhausts its retries.
func NewTaskHandlerWithHook[T any](handler TaskHandlerFunc[T], hook TaskFailureFunc[T]) Handler {
	var payload T
	return &taskHandler[T]{
		name:    qualifiedStructName(payload),
		handler: handler,
		hook:    hook,
	}
}

type taskHandler[T any] struct {
	name    string
	handler TaskHandlerFunc[T]
	hook    TaskFailureFunc[T]
}

func (h *taskHandler[T]) Name() string {
	return h.name
}

func (h *taskHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return err
	}
	return h.handler(ctx, t)
}

func (h *taskHandler[T]) Failed(ctx context.Context, job *Job, err error) {
	if h.hook == nil {
		return
	}
	var t T
	// Best effort: the hook still runs with a zero payload if decoding fails.
	_ = json.Unmarshal(job.Payload, &t)
	h.hook(ctx, t, err)
}

// NewPeriodicHandler creates a Handler for scheduler-created jobs, which
// carry a name but no payload.
func NewPeriodicHandler(name string, handler func(ctx context.Context) error) Handler {
	return &periodicHandler{name: name, handler: handler}
}

type periodicHandler struct {
	name    string
	handler func(ctx context.Context) error
}

func (h *periodicHandler) Name() string {
	return h.name
}

func (h *periodicHandler) Handle(ctx context.Context, _ json.RawMessage) error {
	return h.handler(ctx)
}

// qualifiedStructName derives the job type tag from the payload type,
// e.g. "jobs.SendEmailPayload".
func qualifiedStructName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}
