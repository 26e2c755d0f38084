package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "frames", cfg.Output.Dir)
	assert.Equal(t, "bmp", cfg.Output.Format)
	assert.Equal(t, []string{"y", "z"}, cfg.Frames.Axes)
	assert.Equal(t, MiddleFrame, cfg.Frames.Index)
	assert.False(t, cfg.Frames.Stats)
	assert.Equal(t, 0, cfg.Verbosity)
}

func TestLoadConfig(t *testing.T) {
	t.Run("MissingFileReturnsDefaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("PartialFileOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "output:\n  format: png\nframes:\n  axes: [x]\n  index: 7\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "png", cfg.Output.Format)
		assert.Equal(t, []string{"x"}, cfg.Frames.Axes)
		assert.Equal(t, 7, cfg.Frames.Index)
		// Untouched fields keep their defaults.
		assert.Equal(t, "frames", cfg.Output.Dir)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Input.Metadata = "scan.mhd"
	cfg.Input.Data = "scan.raw"
	cfg.Output.Format = "raw"
	cfg.Frames.Axes = []string{"x", "y", "z"}
	cfg.Frames.Stats = true
	cfg.Verbosity = 2

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
