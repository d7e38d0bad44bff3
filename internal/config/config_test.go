package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_LISTEN_ADDR", "STORE_CONNECT_TIMEOUT", "STORE_CONNECT_ON_START", "LOG_LEVEL", "LOG_JSON"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, ":4000", c.ListenAddr)
	assert.Equal(t, 10*time.Second, c.ConnectTimeout)
	assert.False(t, c.ConnectOnStart)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_LISTEN_ADDR", ":8080")
	t.Setenv("STORE_CONNECT_TIMEOUT", "3s")
	t.Setenv("STORE_CONNECT_ON_START", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_JSON", "1")

	c := FromEnv()
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, 3*time.Second, c.ConnectTimeout)
	assert.True(t, c.ConnectOnStart)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.LogJSON)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORE_CONNECT_TIMEOUT", "soon")
	t.Setenv("STORE_CONNECT_ON_START", "maybe")

	c := FromEnv()
	assert.Equal(t, 10*time.Second, c.ConnectTimeout)
	assert.False(t, c.ConnectOnStart)
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("Should ignore a missing file", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	})

	t.Run("Should not override variables already set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nPOSTS_TEST_ONLY=from-file\n"), 0o600))
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("POSTS_TEST_ONLY", "")
		require.NoError(t, os.Unsetenv("POSTS_TEST_ONLY"))

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "warn", os.Getenv("LOG_LEVEL"))
		assert.Equal(t, "from-file", os.Getenv("POSTS_TEST_ONLY"))
	})
}
