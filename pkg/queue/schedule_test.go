package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/queuekit/pkg/queue"
)

func TestEvery(t *testing.T) {
	t.Parallel()

	schedule := queue.Every(10 * time.Minute)
	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, from.Add(10*time.Minute), schedule.Next(from))
	assert.Equal(t, "every 10m0s", schedule.String())
}

func TestDailyAt(t *testing.T) {
	t.Parallel()

	t.Run("before the scheduled time runs same day", func(t *testing.T) {
		t.Parallel()

		schedule := queue.DailyAt(14, 30)
		from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		next := schedule.Next(from)
		assert.Equal(t, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), next)
	})

	t.Run("after the scheduled time rolls to next day", func(t *testing.T) {
		t.Parallel()

		schedule := queue.DailyAt(14, 30)
		from := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

		next := schedule.Next(from)
		assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), next)
	})

	t.Run("exactly at the scheduled time rolls forward", func(t *testing.T) {
		t.Parallel()

		schedule := queue.DailyAt(14, 30)
		from := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

		next := schedule.Next(from)
		assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), next)
	})

	t.Run("string representation", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "daily at 02:05", queue.DailyAt(2, 5).String())
	})
}

func TestCron(t *testing.T) {
	t.Parallel()

	t.Run("standard five-field expression", func(t *testing.T) {
		t.Parallel()

		schedule, err := queue.Cron("0 2 * * *")
		require.NoError(t, err)

		from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC), schedule.Next(from))
		assert.Equal(t, `cron "0 2 * * *"`, schedule.String())
	})

	t.Run("descriptor", func(t *testing.T) {
		t.Parallel()

		schedule, err := queue.Cron("@hourly")
		require.NoError(t, err)

		from := time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), schedule.Next(from))
	})

	t.Run("invalid expression", func(t *testing.T) {
		t.Parallel()

		schedule, err := queue.Cron("not a cron spec")
		assert.ErrorIs(t, err, queue.ErrInvalidSchedule)
		assert.Nil(t, schedule)
	})

	t.Run("MustCron panics on invalid expression", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			queue.MustCron("61 * * * *")
		})
		assert.NotPanics(t, func() {
			queue.MustCron("*/5 * * * *")
		})
	})
}
