package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/queuekit/pkg/queue"
)

func TestJob_IncrementAttempts(t *testing.T) {
	t.Parallel()

	job := &queue.Job{MaxAttempts: 3}

	assert.Equal(t, 0, job.Attempts)

	job.IncrementAttempts()
	assert.Equal(t, 1, job.Attempts)

	job.IncrementAttempts()
	job.IncrementAttempts()
	assert.Equal(t, 3, job.Attempts)
}

func TestJob_Exhausted(t *testing.T) {
	t.Parallel()

	t.Run("fresh job is not exhausted", func(t *testing.T) {
		t.Parallel()

		job := &queue.Job{Attempts: 0, MaxAttempts: 3}
		assert.False(t, job.Exhausted())
	})

	t.Run("job below budget is not exhausted", func(t *testing.T) {
		t.Parallel()

		job := &queue.Job{Attempts: 2, MaxAttempts: 3}
		assert.False(t, job.Exhausted())
	})

	t.Run("job at budget is exhausted", func(t *testing.T) {
		t.Parallel()

		job := &queue.Job{Attempts: 3, MaxAttempts: 3}
		assert.True(t, job.Exhausted())
	})

	t.Run("single attempt budget", func(t *testing.T) {
		t.Parallel()

		job := &queue.Job{Attempts: 1, MaxAttempts: 1}
		assert.True(t, job.Exhausted())
	})
}
