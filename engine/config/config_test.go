package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[canvas]
auto_clear = false
clear_color = [0.1, 0.2, 0.3]
matrix_pool_capacity = 256

[driver]
frame_limit = 144
profiling = true
profile_interval = "500ms"

[window]
title = "Demo"
width = 800
height = 600

[renderer]
present_mode = "Uncapped"
msaa = 4

[loader]
workers = 6
`))
	require.NoError(t, err)

	require.False(t, *cfg.Canvas.AutoClear)
	require.Equal(t, []float64{0.1, 0.2, 0.3, 1}, cfg.Canvas.ClearColor)
	require.Equal(t, 256, cfg.Canvas.MatrixPoolCapacity)
	require.Equal(t, float32(1), cfg.Canvas.ClearDepth)
	require.Equal(t, 144.0, cfg.Driver.FrameLimit)
	require.True(t, cfg.Driver.Profiling)
	require.Equal(t, "500ms", cfg.Driver.ProfileInterval)
	require.Equal(t, "Demo", cfg.Window.Title)
	require.Equal(t, 800, cfg.Window.Width)
	require.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	require.Equal(t, uint32(4), cfg.Renderer.MSAA)
	require.Equal(t, 6, cfg.Loader.Workers)
	require.Equal(t, 64, cfg.Loader.QueueSize)
}

func TestParseRejectsOutOfRangeValues(t *testing.T) {
	cfg, err := Parse([]byte(`
[canvas]
clear_color = [1.0, 0.0]
pixel_ratio = -2.0

[driver]
profile_interval = "soon"

[window]
width = 0
height = 600

[renderer]
msaa = 8

[loader]
workers = -1
`))
	require.NoError(t, err)

	def := Default()
	require.Equal(t, def.Canvas.ClearColor, cfg.Canvas.ClearColor)
	require.Equal(t, def.Canvas.PixelRatio, cfg.Canvas.PixelRatio)
	require.Equal(t, def.Driver.ProfileInterval, cfg.Driver.ProfileInterval)
	require.Equal(t, def.Window.Width, cfg.Window.Width)
	require.Equal(t, def.Window.Height, cfg.Window.Height)
	require.Equal(t, def.Renderer.MSAA, cfg.Renderer.MSAA)
	require.Equal(t, def.Loader.Workers, cfg.Loader.Workers)
}

func TestParseInvalidTOML(t *testing.T) {
	cfg, err := Parse([]byte("[canvas\nauto_clear = "))
	require.Error(t, err)
	require.Equal(t, Default().Window, cfg.Window)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.toml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	cfg.Driver.FrameLimit = 30
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Saved", loaded.Window.Title)
	require.Equal(t, 30.0, loaded.Driver.FrameLimit)
}

func TestOptionsAreProduced(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.CanvasOptions(), 7)
	require.Len(t, cfg.WindowOptions(), 3)
	require.Len(t, cfg.RendererOptions(), 3)
	require.Len(t, cfg.EngineOptions(), 4)

	// A zero Config is normalized before conversion.
	require.NotPanics(t, func() { _ = Config{}.CanvasOptions() })
}
