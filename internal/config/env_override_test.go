package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("STACKSORT_SEED sets generator seed", func(t *testing.T) {
		t.Setenv("STACKSORT_SEED", "42")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, uint32(42), cfg.Generate.Seed)
	})

	t.Run("compressor bounds", func(t *testing.T) {
		t.Setenv("STACKSORT_MAX_DEPTH", "3")
		t.Setenv("STACKSORT_MAX_LEN", "64")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 3, cfg.Compress.MaxDepth)
		assert.Equal(t, 64, cfg.Compress.MaxLen)
	})

	t.Run("STACKSORT_LOG_LEVEL", func(t *testing.T) {
		t.Setenv("STACKSORT_LOG_LEVEL", "debug")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("unparsable values are ignored", func(t *testing.T) {
		t.Setenv("STACKSORT_SEED", "-1")
		t.Setenv("STACKSORT_MAX_DEPTH", "deep")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultSeed, cfg.Generate.Seed)
		assert.Equal(t, 1, cfg.Compress.MaxDepth)
	})

	t.Run("empty values leave config alone", func(t *testing.T) {
		t.Setenv("STACKSORT_SEED", "")
		t.Setenv("STACKSORT_MAX_DEPTH", "")
		t.Setenv("STACKSORT_MAX_LEN", "")
		t.Setenv("STACKSORT_LOG_LEVEL", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestEnvOverridesApplyOnLoad(t *testing.T) {
	t.Setenv("STACKSORT_MAX_LEN", "12")

	path := t.TempDir() + "/stacksort.yaml"
	cfg := DefaultConfig()
	cfg.Compress.MaxLen = 99
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Compress.MaxLen)
}

func TestLoggingConfig(t *testing.T) {
	c := LoggingConfig{Level: "info"}
	assert.True(t, c.IsCategoryEnabled("sort"))
	assert.Equal(t, "info", c.EffectiveLevel())

	c.Categories = map[string]bool{"sort": false, "bench": true}
	assert.False(t, c.IsCategoryEnabled("sort"))
	assert.True(t, c.IsCategoryEnabled("bench"))
	assert.True(t, c.IsCategoryEnabled("replay"))

	c.DebugMode = true
	assert.Equal(t, "debug", c.EffectiveLevel())
}
