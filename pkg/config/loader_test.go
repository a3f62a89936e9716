package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/queuekit/pkg/config"
)

type WorkerTestConfig struct {
	QueueName   string `env:"TEST_WORKER_QUEUE" envDefault:"default"`
	MaxAttempts int    `env:"TEST_WORKER_MAX_ATTEMPTS" envDefault:"3"`
	Verbose     bool   `env:"TEST_WORKER_VERBOSE" envDefault:"false"`
}

type SingletonTestConfig struct {
	Value string `env:"TEST_SINGLETON_VALUE" envDefault:"initial"`
}

type RequiredTestConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("reads environment variables", func(t *testing.T) {
		t.Setenv("TEST_WORKER_QUEUE", "emails")
		t.Setenv("TEST_WORKER_MAX_ATTEMPTS", "5")
		t.Setenv("TEST_WORKER_VERBOSE", "true")
		config.ResetCache()

		var cfg WorkerTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "emails", cfg.QueueName)
		assert.Equal(t, 5, cfg.MaxAttempts)
		assert.True(t, cfg.Verbose)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		os.Unsetenv("TEST_WORKER_QUEUE")
		os.Unsetenv("TEST_WORKER_MAX_ATTEMPTS")
		os.Unsetenv("TEST_WORKER_VERBOSE")
		config.ResetCache()

		var cfg WorkerTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default", cfg.QueueName)
		assert.Equal(t, 3, cfg.MaxAttempts)
		assert.False(t, cfg.Verbose)
	})

	t.Run("missing required value", func(t *testing.T) {
		os.Unsetenv("TEST_REQUIRED_TOKEN")
		config.ResetCache()

		var cfg RequiredTestConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[WorkerTestConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("caches per type", func(t *testing.T) {
		t.Setenv("TEST_SINGLETON_VALUE", "first")
		config.ResetCache()

		var first SingletonTestConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_SINGLETON_VALUE", "second")

		var second SingletonTestConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value, "cached value must win over the mutated environment")
	})
}

func TestForceReloadConfig(t *testing.T) {
	t.Setenv("TEST_SINGLETON_VALUE", "before")
	config.ResetCache()

	var cfg SingletonTestConfig
	require.NoError(t, config.Load(&cfg))
	require.Equal(t, "before", cfg.Value)

	t.Setenv("TEST_SINGLETON_VALUE", "after")

	var reloaded SingletonTestConfig
	require.NoError(t, config.ForceReloadConfig(&reloaded))
	assert.Equal(t, "after", reloaded.Value)

	// The cache now serves the reloaded value.
	var cached SingletonTestConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "after", cached.Value)
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required value", func(t *testing.T) {
		os.Unsetenv("TEST_REQUIRED_TOKEN")
		config.ResetCache()

		assert.Panics(t, func() {
			var cfg RequiredTestConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("does not panic with defaults", func(t *testing.T) {
		config.ResetCache()

		assert.NotPanics(t, func() {
			var cfg WorkerTestConfig
			config.MustLoad(&cfg)
		})
	})
}
