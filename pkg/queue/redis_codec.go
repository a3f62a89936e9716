package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Hash field encoding shared by the job and dead-letter records.
// Timestamps are unix milliseconds; the payload stays raw JSON bytes.

func jobToFields(job *Job) map[string]any {
	return map[string]any{
		"queue":        job.Queue,
		"type":         job.Type,
		"payload":      string(job.Payload),
		"attempts":     job.Attempts,
		"max_attempts": job.MaxAttempts,
		"created_at":   job.CreatedAt.UnixMilli(),
	}
}

func jobFromFields(id uuid.UUID, fields map[string]string) (*Job, error) {
	job := &Job{
		ID:      id,
		Queue:   fields["queue"],
		Type:    fields["type"],
		Payload: json.RawMessage(fields["payload"]),
	}

	if job.Queue == "" {
		return job, fmt.Errorf("missing queue field")
	}
	if job.Type == "" {
		return job, fmt.Errorf("missing type field")
	}

	var err error
	if job.Attempts, err = intField(fields, "attempts"); err != nil {
		return job, err
	}
	if job.MaxAttempts, err = intField(fields, "max_attempts"); err != nil {
		return job, err
	}
	if job.CreatedAt, err = timeField(fields, "created_at"); err != nil {
		return job, err
	}

	return job, nil
}

func deadLetterToFields(dl *DeadLetter) map[string]any {
	return map[string]any{
		"queue":        dl.Queue,
		"type":         dl.Type,
		"payload":      string(dl.Payload),
		"attempts":     dl.Attempts,
		"max_attempts": dl.MaxAttempts,
		"error":        dl.Error,
		"failed_at":    dl.FailedAt.UnixMilli(),
		"created_at":   dl.CreatedAt.UnixMilli(),
	}
}

func deadLetterFromFields(jobID uuid.UUID, fields map[string]string) (*DeadLetter, error) {
	dl := &DeadLetter{
		JobID:   jobID,
		Queue:   fields["queue"],
		Type:    fields["type"],
		Payload: json.RawMessage(fields["payload"]),
		Error:   fields["error"],
	}

	var err error
	if dl.Attempts, err = intField(fields, "attempts"); err != nil {
		return nil, err
	}
	if dl.MaxAttempts, err = intField(fields, "max_attempts"); err != nil {
		return nil, err
	}
	if dl.FailedAt, err = timeField(fields, "failed_at"); err != nil {
		return nil, err
	}
	if dl.CreatedAt, err = timeField(fields, "created_at"); err != nil {
		return nil, err
	}

	return dl, nil
}

func intField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("missing %s field", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s field %q", name, raw)
	}
	return n, nil
}

func timeField(fields map[string]string, name string) (time.Time, error) {
	raw, ok := fields[name]
	if !ok {
		return time.Time{}, fmt.Errorf("missing %s field", name)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s field %q", name, raw)
	}
	return time.UnixMilli(ms), nil
}
