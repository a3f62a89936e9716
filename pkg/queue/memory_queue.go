package queue

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue implements Queue, DeadLetterStore, and PendingChecker
// entirely in memory. Intended for tests and local development; a single
// mutex around every operation makes Pop trivially atomic.
type MemoryQueue struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]*Job
	pending map[string][]uuid.UUID
	delayed map[string][]delayedEntry
	dead    map[uuid.UUID]*DeadLetter
}

type delayedEntry struct {
	id    uuid.UUID
	dueAt time.Time
}

// NewMemoryQueue creates an empty in-memory queue store.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		jobs:    make(map[uuid.UUID]*Job),
		pending: make(map[string][]uuid.UUID),
		delayed: make(map[string][]delayedEntry),
		dead:    make(map[uuid.UUID]*DeadLetter),
	}
}

// Push implements Queue.
func (m *MemoryQueue) Push(ctx context.Context, job *Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Clone to keep the durable record isolated from caller mutations.
	jobCopy := *job
	m.jobs[job.ID] = &jobCopy
	m.pending[job.Queue] = append(m.pending[job.Queue], job.ID)

	return nil
}

// Pop implements Queue. Ids whose job record has vanished are skipped.
func (m *MemoryQueue) Pop(ctx context.Context, queueName string) (*Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.pending[queueName]) > 0 {
		id := m.pending[queueName][0]
		m.pending[queueName] = m.pending[queueName][1:]

		job, exists := m.jobs[id]
		if !exists {
			continue
		}

		jobCopy := *job
		return &jobCopy, nil
	}

	return nil, ErrQueueEmpty
}

// Delete implements Queue. Unknown ids are a no-op.
func (m *MemoryQueue) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[id]
	if !exists {
		return nil
	}

	delete(m.jobs, id)
	m.removeRefs(id, job.Queue)

	return nil
}

// Release implements Queue. The stored record absorbs the caller's
// attempt count before the id re-enters pending or delayed state.
func (m *MemoryQueue) Release(ctx context.Context, job *Job, delay time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.jobs[job.ID]
	if !exists {
		return nil
	}

	stored.Attempts = job.Attempts

	if delay <= 0 {
		m.pending[stored.Queue] = append(m.pending[stored.Queue], stored.ID)
		return nil
	}

	m.delayed[stored.Queue] = append(m.delayed[stored.Queue], delayedEntry{
		id:    stored.ID,
		dueAt: time.Now().Add(delay),
	})

	return nil
}

// Fail implements Queue: snapshot into the dead-letter map, then purge
// every durable trace of the job. Unknown ids are a no-op.
func (m *MemoryQueue) Fail(ctx context.Context, job *Job, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.jobs[job.ID]
	if !exists {
		return nil
	}

	m.dead[job.ID] = &DeadLetter{
		JobID:       job.ID,
		Queue:       stored.Queue,
		Type:        stored.Type,
		Payload:     stored.Payload,
		Attempts:    job.Attempts,
		MaxAttempts: stored.MaxAttempts,
		Error:       reason,
		FailedAt:    time.Now(),
		CreatedAt:   stored.CreatedAt,
	}

	delete(m.jobs, job.ID)
	m.removeRefs(job.ID, stored.Queue)

	return nil
}

// PromoteDue implements Queue. Due entries move to the pending tail in
// due-time order.
func (m *MemoryQueue) PromoteDue(ctx context.Context, queueName string, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.delayed[queueName]
	if len(entries) == 0 {
		return 0, nil
	}

	due := make([]delayedEntry, 0, len(entries))
	rest := entries[:0]
	for _, e := range entries {
		if !e.dueAt.After(now) {
			due = append(due, e)
		} else {
			rest = append(rest, e)
		}
	}
	m.delayed[queueName] = rest

	slices.SortStableFunc(due, func(a, b delayedEntry) int {
		return a.dueAt.Compare(b.dueAt)
	})
	for _, e := range due {
		m.pending[queueName] = append(m.pending[queueName], e.id)
	}

	return len(due), nil
}

// HasPending implements PendingChecker over both pending and delayed state.
func (m *MemoryQueue) HasPending(ctx context.Context, queueName, jobType string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.pending[queueName] {
		if job, ok := m.jobs[id]; ok && job.Type == jobType {
			return true, nil
		}
	}
	for _, e := range m.delayed[queueName] {
		if job, ok := m.jobs[e.id]; ok && job.Type == jobType {
			return true, nil
		}
	}

	return false, nil
}

// DeadLetter implements DeadLetterStore.
func (m *MemoryQueue) DeadLetter(ctx context.Context, jobID uuid.UUID) (*DeadLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.dead[jobID]
	if !exists {
		return nil, nil
	}

	entryCopy := *entry
	return &entryCopy, nil
}

// DeadLetters implements DeadLetterStore.
func (m *MemoryQueue) DeadLetters(ctx context.Context) ([]DeadLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]DeadLetter, 0, len(m.dead))
	for _, entry := range m.dead {
		entries = append(entries, *entry)
	}

	slices.SortFunc(entries, func(a, b DeadLetter) int {
		return a.FailedAt.Compare(b.FailedAt)
	})

	return entries, nil
}

// Len reports how many jobs are pending on the named queue.
func (m *MemoryQueue) Len(queueName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pending[queueName])
}

// DelayedLen reports how many jobs are parked in the named delayed set.
func (m *MemoryQueue) DelayedLen(queueName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.delayed[queueName])
}

// JobExists reports whether any durable state remains for the job id.
func (m *MemoryQueue) JobExists(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.jobs[id]
	return exists
}

// removeRefs drops the id from the pending list and delayed set of its
// queue. Callers must hold the mutex.
func (m *MemoryQueue) removeRefs(id uuid.UUID, queueName string) {
	m.pending[queueName] = slices.DeleteFunc(m.pending[queueName], func(x uuid.UUID) bool {
		return x == id
	})
	m.delayed[queueName] = slices.DeleteFunc(m.delayed[queueName], func(e delayedEntry) bool {
		return e.id == id
	})
}
