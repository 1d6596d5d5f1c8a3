package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.8, cfg.Quality)
	assert.Equal(t, float64(5), cfg.MaxSizeMB)
	assert.Equal(t, "-converted", cfg.Suffix)
	assert.Equal(t, 100*time.Millisecond, cfg.ReleaseDelay)
	assert.Equal(t, "status", cfg.StatusClass)
}

func TestFromEnv(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cfg, err := FromEnv(mapLookup(nil))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := FromEnv(mapLookup(map[string]string{
			EnvQuality:      "0.5",
			EnvMaxSizeMB:    "10",
			EnvSuffix:       "-out",
			EnvReleaseDelay: "250ms",
			EnvStatusClass:  "banner",
		}))
		require.NoError(t, err)
		assert.Equal(t, Config{
			Quality:      0.5,
			MaxSizeMB:    10,
			Suffix:       "-out",
			ReleaseDelay: 250 * time.Millisecond,
			StatusClass:  "banner",
		}, cfg)
	})

	for _, tc := range []struct {
		key, value string
	}{
		{EnvQuality, "high"},
		{EnvQuality, "1.5"},
		{EnvMaxSizeMB, "lots"},
		{EnvReleaseDelay, "soon"},
	} {
		t.Run("invalid "+tc.key+"="+tc.value, func(t *testing.T) {
			_, err := FromEnv(mapLookup(map[string]string{tc.key: tc.value}))
			assert.Error(t, err)
		})
	}

	t.Run("non-positive max size uses default", func(t *testing.T) {
		cfg, err := FromEnv(mapLookup(map[string]string{EnvMaxSizeMB: "0"}))
		require.NoError(t, err)
		assert.Equal(t, float64(DefaultMaxSizeMB), cfg.MaxSizeMB)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvSuffix+"=-base\n"+EnvStatusClass+"=base\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(EnvSuffix+"=-local\n"), 0600))
	t.Setenv(EnvSuffix, "")
	t.Setenv(EnvStatusClass, "")
	os.Unsetenv(EnvSuffix)
	os.Unsetenv(EnvStatusClass)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "-local", cfg.Suffix)
	assert.Equal(t, "base", cfg.StatusClass)
}
