package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/queuekit/pkg/queue"
)

func TestNewScheduler(t *testing.T) {
	t.Parallel()

	t.Run("successful creation", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue())
		require.NoError(t, err)
		require.NotNil(t, scheduler)
	})

	t.Run("nil queue error", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(nil)
		assert.ErrorIs(t, err, queue.ErrQueueNil)
		assert.Nil(t, scheduler)
	})
}

func TestScheduler_AddJob(t *testing.T) {
	t.Parallel()

	t.Run("registers a job", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue(),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, scheduler.AddJob("cleanup", queue.Every(time.Hour)))
		assert.Equal(t, []string{"cleanup"}, scheduler.ListJobs())
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue(),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, scheduler.AddJob("cleanup", queue.Every(time.Hour)))
		err = scheduler.AddJob("cleanup", queue.Every(time.Minute))
		assert.ErrorIs(t, err, queue.ErrJobAlreadyRegistered)
	})

	t.Run("nil schedule rejected", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue(),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		err = scheduler.AddJob("cleanup", nil)
		assert.ErrorIs(t, err, queue.ErrInvalidSchedule)
	})

	t.Run("remove job", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue(),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, scheduler.AddJob("cleanup", queue.Every(time.Hour)))
		scheduler.RemoveJob("cleanup")
		assert.Empty(t, scheduler.ListJobs())
	})
}

func TestScheduler_Start(t *testing.T) {
	t.Parallel()

	t.Run("no jobs registered", func(t *testing.T) {
		t.Parallel()

		scheduler, err := queue.NewScheduler(queue.NewMemoryQueue(),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		err = scheduler.Start(context.Background())
		assert.ErrorIs(t, err, queue.ErrSchedulerNotConfigured)
	})

	t.Run("enqueues a job once the schedule elapses", func(t *testing.T) {
		t.Parallel()

		store := queue.NewMemoryQueue()
		scheduler, err := queue.NewScheduler(store,
			queue.WithCheckInterval(10*time.Millisecond),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, scheduler.AddJob("metrics_rollup", queue.Every(20*time.Millisecond),
			queue.WithJobQueue("reports"),
			queue.WithJobMaxAttempts(5)))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := make(chan error, 1)
		go func() {
			errCh <- scheduler.Start(ctx)
		}()

		require.Eventually(t, func() bool {
			return store.Len("reports") > 0
		}, 2*time.Second, 5*time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)

		job, err := store.Pop(context.Background(), "reports")
		require.NoError(t, err)
		assert.Equal(t, "metrics_rollup", job.Type)
		assert.Equal(t, "reports", job.Queue)
		assert.Equal(t, 5, job.MaxAttempts)
		assert.Empty(t, job.Payload)
	})

	t.Run("skips while an instance is still pending", func(t *testing.T) {
		t.Parallel()

		store := queue.NewMemoryQueue()
		scheduler, err := queue.NewScheduler(store,
			queue.WithCheckInterval(5*time.Millisecond),
			queue.WithSchedulerLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, scheduler.AddJob("nightly_report", queue.Every(10*time.Millisecond)))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := make(chan error, 1)
		go func() {
			errCh <- scheduler.Start(ctx)
		}()

		require.Eventually(t, func() bool {
			return store.Len(queue.DefaultQueueName) > 0
		}, 2*time.Second, 5*time.Millisecond)

		// Nobody consumes the job, so no duplicates may pile up even after
		// several further schedule periods.
		time.Sleep(100 * time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)

		assert.Equal(t, 1, store.Len(queue.DefaultQueueName))
	})
}
