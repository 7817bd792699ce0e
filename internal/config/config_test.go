package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAt_CreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".internly")

	require.NoError(t, InitializeAt(dir))
	require.NotNil(t, AppConfig)

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", AppConfig.LogLevel)
	assert.Equal(t, "pretty", AppConfig.LogFormat)
	assert.Equal(t, filepath.Join(dir, "internly.db"), AppConfig.DBPath)
	assert.Equal(t, "memory", AppConfig.CacheBackend)
	assert.Equal(t, time.Hour, AppConfig.CacheTTL)
	assert.Equal(t, 4, AppConfig.Workers)
	assert.Equal(t, 30*time.Second, AppConfig.FetchTimeout)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath())
}

func TestInitializeAt_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INTERNLY_WORKERS", "8")
	t.Setenv("INTERNLY_CACHE_TTL", "15m")

	require.NoError(t, InitializeAt(dir))
	assert.Equal(t, 8, AppConfig.Workers)
	assert.Equal(t, 15*time.Minute, AppConfig.CacheTTL)
}

func TestInitializeAt_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{"unknown backend", "INTERNLY_CACHE_BACKEND", "memcached", "cache_backend"},
		{"zero workers", "INTERNLY_WORKERS", "0", "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			err := InitializeAt(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetAndGet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitializeAt(dir))

	require.NoError(t, Set("workers", "6"))
	assert.Equal(t, "6", Get("workers"))

	err := Set("openai_key", "sk-123")
	assert.ErrorContains(t, err, "unknown config key")

	// the written value survives a reload
	require.NoError(t, InitializeAt(dir))
	assert.Equal(t, 6, AppConfig.Workers)
}

func TestSet_RejectsInvalidValue(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitializeAt(dir))

	tests := []struct {
		key   string
		value string
	}{
		{"workers", "0"},
		{"workers", "many"},
		{"cache_backend", "memcached"},
		{"cache_ttl", "-5m"},
		{"db_path", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := Set(tt.key, tt.value)
			assert.ErrorContains(t, err, "invalid value for "+tt.key)
		})
	}

	// nothing bad reached the file
	require.NoError(t, InitializeAt(dir))
	assert.Equal(t, 4, AppConfig.Workers)
	assert.Equal(t, "memory", AppConfig.CacheBackend)

	require.NoError(t, Set("workers", "2"))
	require.NoError(t, InitializeAt(dir))
	assert.Equal(t, 2, AppConfig.Workers)
}

func TestLoad_ToleratesInvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".internly")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("workers: 0\n"), 0600))

	assert.ErrorContains(t, Initialize(), "workers must be at least 1")

	require.NoError(t, Load())
	assert.Equal(t, 0, AppConfig.Workers)

	// the bad value can be repaired in place
	require.NoError(t, Set("workers", "3"))
	require.NoError(t, Initialize())
	assert.Equal(t, 3, AppConfig.Workers)
}
