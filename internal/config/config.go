package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/splittree"
)

const (
	DefaultLifetime     = 5000.0
	DefaultSpawnDivisor = 20.0
	DefaultFadeWindow   = 0.1
	DefaultFadeAlpha    = 0.4
	DefaultColorMin     = 0.3
	DefaultColorSpan    = 0.4
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultFPS          = 60
	DefaultFOV          = 45.0
	DefaultCameraZ      = 4.0
	DefaultFrames       = 1800
	DefaultDt           = 1000.0 / 60
	DefaultDataDir      = ".splitbox"

	EnvPrefix = "SPLITBOX_"
)

type Config struct {
	Seed     int64        `yaml:"seed" env:"SEED"`
	LogLevel string       `yaml:"log_level" env:"LOG_LEVEL"`
	DataDir  string       `yaml:"data_dir" env:"DATA_DIR"`
	Tree     TreeConfig   `yaml:"tree" envPrefix:"TREE_"`
	Box      BoxConfig    `yaml:"box"`
	Render   RenderConfig `yaml:"render" envPrefix:"RENDER_"`
	Run      RunConfig    `yaml:"run" envPrefix:"RUN_"`
}

type TreeConfig struct {
	Lifetime     float64 `yaml:"lifetime" env:"LIFETIME"`
	SpawnDivisor float64 `yaml:"spawn_divisor" env:"SPAWN_DIVISOR"`
	FadeWindow   float64 `yaml:"fade_window" env:"FADE_WINDOW"`
	FadeAlpha    float64 `yaml:"fade_alpha" env:"FADE_ALPHA"`
	ColorMin     float64 `yaml:"color_min" env:"COLOR_MIN"`
	ColorSpan    float64 `yaml:"color_span" env:"COLOR_SPAN"`
	MaxDepth     int     `yaml:"max_depth" env:"MAX_DEPTH"`
	InitialAxis  string  `yaml:"initial_axis" env:"INITIAL_AXIS"`
}

type BoxConfig struct {
	Origin  [3]float64 `yaml:"origin"`
	Extents [3]float64 `yaml:"extents"`
}

type RenderConfig struct {
	Width   int     `yaml:"width" env:"WIDTH"`
	Height  int     `yaml:"height" env:"HEIGHT"`
	FPS     int     `yaml:"fps" env:"FPS"`
	FOV     float64 `yaml:"fov" env:"FOV"`
	CameraZ float64 `yaml:"camera_z" env:"CAMERA_Z"`
	Theme   string  `yaml:"theme" env:"THEME"`
}

type RunConfig struct {
	Frames int     `yaml:"frames" env:"FRAMES"`
	Dt     float64 `yaml:"dt" env:"DT"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  DefaultDataDir,
		Tree: TreeConfig{
			Lifetime:     DefaultLifetime,
			SpawnDivisor: DefaultSpawnDivisor,
			FadeWindow:   DefaultFadeWindow,
			FadeAlpha:    DefaultFadeAlpha,
			ColorMin:     DefaultColorMin,
			ColorSpan:    DefaultColorSpan,
			InitialAxis:  "x",
		},
		Box: BoxConfig{
			Origin:  [3]float64{-1.5, -1.5, -1.5},
			Extents: [3]float64{3, 3, 3},
		},
		Render: RenderConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			FPS:     DefaultFPS,
			FOV:     DefaultFOV,
			CameraZ: DefaultCameraZ,
			Theme:   "cyberpunk",
		},
		Run: RunConfig{
			Frames: DefaultFrames,
			Dt:     DefaultDt,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which is modified and returned.
// Fields the file does not mention keep their base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides cfg with any SPLITBOX_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) TreeParams() splittree.Params {
	return splittree.Params{
		Lifetime:     c.Tree.Lifetime,
		SpawnDivisor: c.Tree.SpawnDivisor,
		FadeWindow:   c.Tree.FadeWindow,
		ColorMin:     c.Tree.ColorMin,
		ColorSpan:    c.Tree.ColorSpan,
		MaxDepth:     c.Tree.MaxDepth,
	}
}

func (c *Config) BoundingBox() splittree.Box {
	return splittree.Box{
		Origin:  splittree.Vec3(c.Box.Origin),
		Extents: splittree.Vec3(c.Box.Extents),
	}
}

func (c *Config) DriverConfig() (frame.Config, error) {
	axis, err := splittree.ParseAxis(c.Tree.InitialAxis)
	if err != nil {
		return frame.Config{}, err
	}
	return frame.Config{
		Params:      c.TreeParams(),
		FadeAlpha:   c.Tree.FadeAlpha,
		Box:         c.BoundingBox(),
		InitialAxis: axis,
		Seed:        c.Seed,
	}, nil
}

func (c *Config) Validate() error {
	dc, err := c.DriverConfig()
	if err != nil {
		return err
	}
	if err := dc.Validate(); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Render.FPS)
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Run.Dt)
	}
	if c.Run.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Run.Frames)
	}
	return nil
}
