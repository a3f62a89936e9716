package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/queuekit/pkg/config"
)

type EnvFileTestConfig struct {
	Queue string `env:"TEST_ENVFILE_QUEUE"`
	Count int    `env:"TEST_ENVFILE_COUNT"`
}

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads variables from a file", func(t *testing.T) {
		os.Unsetenv("TEST_ENVFILE_QUEUE")
		os.Unsetenv("TEST_ENVFILE_COUNT")
		config.ResetCache()

		path := writeEnvFile(t, ".env.custom", "TEST_ENVFILE_QUEUE=emails\nTEST_ENVFILE_COUNT=7\n")
		require.NoError(t, config.LoadEnv(path))
		t.Cleanup(func() {
			os.Unsetenv("TEST_ENVFILE_QUEUE")
			os.Unsetenv("TEST_ENVFILE_COUNT")
		})

		var cfg EnvFileTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "emails", cfg.Queue)
		assert.Equal(t, 7, cfg.Count)
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		os.Unsetenv("TEST_ENVFILE_QUEUE")
		config.ResetCache()

		base := writeEnvFile(t, ".env", "TEST_ENVFILE_QUEUE=base\n")
		override := writeEnvFile(t, ".env.override", "TEST_ENVFILE_QUEUE=override\n")
		require.NoError(t, config.LoadEnv(base, override))
		t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_QUEUE") })

		assert.Equal(t, "override", os.Getenv("TEST_ENVFILE_QUEUE"))
	})

	t.Run("missing file error", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
		require.Error(t, err)
	})
}

func TestMustLoadEnv(t *testing.T) {
	t.Run("panics on missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
		})
	})

	t.Run("does not panic with a valid file", func(t *testing.T) {
		path := writeEnvFile(t, ".env.ok", "TEST_ENVFILE_OK=1\n")
		t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_OK") })
		assert.NotPanics(t, func() {
			config.MustLoadEnv(path)
		})
	})
}
