package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/queuekit/pkg/queue"
)

func TestNewPromoter(t *testing.T) {
	t.Parallel()

	t.Run("successful creation", func(t *testing.T) {
		t.Parallel()

		promoter, err := queue.NewPromoter(queue.NewMemoryQueue())
		require.NoError(t, err)
		require.NotNil(t, promoter)
	})

	t.Run("nil queue error", func(t *testing.T) {
		t.Parallel()

		promoter, err := queue.NewPromoter(nil)
		assert.ErrorIs(t, err, queue.ErrQueueNil)
		assert.Nil(t, promoter)
	})
}

func TestPromoter_PromotesDueJobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := queue.NewMemoryQueue()

	enqueuer, err := queue.NewEnqueuer(store)
	require.NoError(t, err)

	id, err := enqueuer.Enqueue(ctx, flakyPayload{})
	require.NoError(t, err)

	// Park the job with a short delay, as a retrying worker would.
	popped, err := store.Pop(ctx, queue.DefaultQueueName)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, popped, 20*time.Millisecond))
	require.Equal(t, 1, store.DelayedLen(queue.DefaultQueueName))

	promoter, err := queue.NewPromoter(store,
		queue.WithPromoteInterval(5*time.Millisecond),
		queue.WithPromoterLogger(discardLogger()))
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- promoter.Start(runCtx)
	}()

	require.Eventually(t, func() bool {
		return store.Len(queue.DefaultQueueName) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)

	assert.Equal(t, 0, store.DelayedLen(queue.DefaultQueueName))

	job, err := store.Pop(ctx, queue.DefaultQueueName)
	require.NoError(t, err)
	assert.Equal(t, id, job.ID)
}

func TestPromoter_StoreErrorIsFatal(t *testing.T) {
	t.Parallel()

	mockQueue := new(MockQueue)
	defer mockQueue.AssertExpectations(t)

	storeErr := errors.New("connection refused")
	mockQueue.On("PromoteDue", mock.Anything, queue.DefaultQueueName, mock.AnythingOfType("time.Time")).
		Return(0, storeErr)

	promoter, err := queue.NewPromoter(mockQueue,
		queue.WithPromoteInterval(5*time.Millisecond),
		queue.WithPromoterLogger(discardLogger()))
	require.NoError(t, err)

	err = promoter.Start(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
