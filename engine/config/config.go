// Package config reads engine settings from TOML and turns them into builder options.
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine"
	"github.com/Carmen-Shannon/oxy-frame/engine/canvas"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frame/engine/window"
)

// Config is the full settings file.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Driver   DriverConfig   `toml:"driver"`
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Loader   LoaderConfig   `toml:"loader"`
}

// CanvasConfig holds per-canvas defaults.
type CanvasConfig struct {
	AutoClear          *bool     `toml:"auto_clear"`
	ClearColor         []float64 `toml:"clear_color"`
	ClearDepth         float32   `toml:"clear_depth"`
	PixelRatio         float32   `toml:"pixel_ratio"`
	MatrixPoolCapacity int       `toml:"matrix_pool_capacity"`
	LogErrors          *bool     `toml:"log_errors"`
}

// DriverConfig holds the frame loop settings.
type DriverConfig struct {
	FrameLimit      float64 `toml:"frame_limit"`
	Profiling       bool    `toml:"profiling"`
	ProfileInterval string  `toml:"profile_interval"`
	CPUProfileDir   string  `toml:"cpu_profile_dir"`
}

// WindowConfig holds the host window settings.
type WindowConfig struct {
	Title         string `toml:"title"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	CloseOnEscape *bool  `toml:"close_on_escape"`
}

// RendererConfig holds surface settings.
type RendererConfig struct {
	PresentMode   string `toml:"present_mode"`
	MSAA          uint32 `toml:"msaa"`
	ForceSoftware bool   `toml:"force_software"`
}

// LoaderConfig sizes the asset loader's worker pool.
type LoaderConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

// Default returns the settings used when no file is present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	yes := true
	return Config{
		Canvas: CanvasConfig{
			AutoClear:          &yes,
			ClearColor:         []float64{0, 0, 0, 1},
			ClearDepth:         1,
			PixelRatio:         1,
			MatrixPoolCapacity: 64,
			LogErrors:          &yes,
		},
		Driver: DriverConfig{
			ProfileInterval: "1s",
		},
		Window: WindowConfig{
			Title:         "oxy-frame",
			Width:         1280,
			Height:        720,
			CloseOnEscape: &yes,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        uint32(renderer.MSAAOff),
		},
		Loader: LoaderConfig{
			Workers:   2,
			QueueSize: 64,
		},
	}
}

// Load reads a TOML file. A missing file yields Default without an error.
//
// Parameters:
//   - path: file to read
//
// Returns:
//   - Config: the parsed settings, normalized against Default
//   - error: error if the file exists but cannot be read or parsed
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes. Unknown keys are logged and ignored; out-of-range values fall back
// to their defaults.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the parsed settings
//   - error: error if the document is not valid TOML
func Parse(data []byte) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	for _, key := range meta.Undecoded() {
		log.Printf("[Config] ignoring unknown key %q", key.String())
	}
	return normalize(cfg), nil
}

// Save writes cfg to path, creating the directory if needed.
//
// Parameters:
//   - path: destination file
//   - cfg: settings to write
//
// Returns:
//   - error: error if encoding or writing fails
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalize(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func normalize(c Config) Config {
	out := Default()

	if c.Canvas.AutoClear != nil {
		out.Canvas.AutoClear = c.Canvas.AutoClear
	}
	if c.Canvas.LogErrors != nil {
		out.Canvas.LogErrors = c.Canvas.LogErrors
	}
	switch len(c.Canvas.ClearColor) {
	case 3:
		out.Canvas.ClearColor = append(append([]float64{}, c.Canvas.ClearColor...), 1)
	case 4:
		out.Canvas.ClearColor = append([]float64{}, c.Canvas.ClearColor...)
	}
	if c.Canvas.ClearDepth >= 0 && c.Canvas.ClearDepth <= 1 {
		out.Canvas.ClearDepth = common.Coalesce(c.Canvas.ClearDepth, out.Canvas.ClearDepth)
	}
	if c.Canvas.PixelRatio > 0 {
		out.Canvas.PixelRatio = c.Canvas.PixelRatio
	}
	if c.Canvas.MatrixPoolCapacity > 0 {
		out.Canvas.MatrixPoolCapacity = c.Canvas.MatrixPoolCapacity
	}

	if c.Driver.FrameLimit > 0 {
		out.Driver.FrameLimit = c.Driver.FrameLimit
	}
	out.Driver.Profiling = c.Driver.Profiling
	if _, err := time.ParseDuration(c.Driver.ProfileInterval); err == nil {
		out.Driver.ProfileInterval = c.Driver.ProfileInterval
	}
	out.Driver.CPUProfileDir = strings.TrimSpace(c.Driver.CPUProfileDir)

	out.Window.Title = common.Coalesce(strings.TrimSpace(c.Window.Title), out.Window.Title)
	if c.Window.Width > 0 && c.Window.Height > 0 {
		out.Window.Width, out.Window.Height = c.Window.Width, c.Window.Height
	}
	if c.Window.CloseOnEscape != nil {
		out.Window.CloseOnEscape = c.Window.CloseOnEscape
	}

	switch strings.ToLower(strings.TrimSpace(c.Renderer.PresentMode)) {
	case "uncapped", "immediate":
		out.Renderer.PresentMode = "uncapped"
	default:
		out.Renderer.PresentMode = "vsync"
	}
	if c.Renderer.MSAA == uint32(renderer.MSAA4x) {
		out.Renderer.MSAA = c.Renderer.MSAA
	}
	out.Renderer.ForceSoftware = c.Renderer.ForceSoftware

	out.Loader.Workers = common.Coalesce(max(c.Loader.Workers, 0), out.Loader.Workers)
	out.Loader.QueueSize = common.Coalesce(max(c.Loader.QueueSize, 0), out.Loader.QueueSize)
	return out
}

// CanvasOptions converts the canvas and loader sections into canvas options.
//
// Returns:
//   - []canvas.CanvasBuilderOption: options for canvas.NewCanvas
func (c Config) CanvasOptions() []canvas.CanvasBuilderOption {
	c = normalize(c)
	cc := c.Canvas
	return []canvas.CanvasBuilderOption{
		canvas.WithAutoClear(*cc.AutoClear),
		canvas.WithClearColor(cc.ClearColor[0], cc.ClearColor[1], cc.ClearColor[2], cc.ClearColor[3]),
		canvas.WithClearDepth(cc.ClearDepth),
		canvas.WithMatrixPoolCapacity(cc.MatrixPoolCapacity),
		canvas.WithViewport(float32(c.Window.Width)/cc.PixelRatio, float32(c.Window.Height)/cc.PixelRatio, cc.PixelRatio),
		canvas.WithLogErrors(*cc.LogErrors),
		canvas.WithLoaderOptions(
			loader.WithWorkers(c.Loader.Workers),
			loader.WithQueueSize(c.Loader.QueueSize),
			loader.WithLogErrors(*cc.LogErrors),
		),
	}
}

// WindowOptions converts the window section into window options.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c Config) WindowOptions() []window.WindowBuilderOption {
	w := normalize(c).Window
	return []window.WindowBuilderOption{
		window.WithTitle(w.Title),
		window.WithSize(w.Width, w.Height),
		window.WithCloseOnEscape(*w.CloseOnEscape),
	}
}

// RendererOptions converts the renderer section into renderer options.
//
// Returns:
//   - []renderer.RendererBuilderOption: options for renderer.NewRenderer
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	r := normalize(c).Renderer
	mode := renderer.PresentModeVSync
	if r.PresentMode == "uncapped" {
		mode = renderer.PresentModeUncapped
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(renderer.MSAASampleCount(r.MSAA)),
		renderer.WithForceSoftwareRenderer(r.ForceSoftware),
	}
}

// EngineOptions converts the driver section into engine options. The canvas options are included.
//
// Returns:
//   - []engine.EngineBuilderOption: options for engine.NewEngine
func (c Config) EngineOptions() []engine.EngineBuilderOption {
	c = normalize(c)
	interval, _ := time.ParseDuration(c.Driver.ProfileInterval)
	return []engine.EngineBuilderOption{
		engine.WithCanvasOptions(c.CanvasOptions()...),
		engine.WithRenderFrameLimit(c.Driver.FrameLimit),
		engine.WithProfiling(c.Driver.Profiling, interval),
		engine.WithCPUProfile(c.Driver.CPUProfileDir),
	}
}
