// Package config loads the YAML settings shared by every front end.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

type Lattice struct {
	CubeSize  float64 `yaml:"cube_size"`
	Gap       float64 `yaml:"gap"`
	Tolerance float64 `yaml:"tolerance,omitempty"` // 0 means a quarter of the spacing
}

type Animation struct {
	DurationMs int    `yaml:"duration_ms"`
	Easing     string `yaml:"easing"`
}

// Key is one key binding, e.g. {axis: x, direction: ccw}.
type Key struct {
	Axis      string `yaml:"axis"`
	Direction string `yaml:"direction"`
}

type Server struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	Lattice   Lattice        `yaml:"lattice"`
	Animation Animation      `yaml:"animation"`
	Keys      map[string]Key `yaml:"keys,omitempty"` // replaces the default bindings when set
	Server    Server         `yaml:"server"`
	Window    Window         `yaml:"window"`
	Journal   string         `yaml:"journal,omitempty"` // empty keeps the journal in memory
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Lattice: Lattice{
			CubeSize: gocube.DefaultCubeSize,
			Gap:      gocube.DefaultGap,
		},
		Animation: Animation{
			DurationMs: int(gocube.DefaultDuration / time.Millisecond),
			Easing:     "quadratic-in-out",
		},
		Server: Server{Addr: ":8080", FPS: 60},
		Window: Window{Width: 960, Height: 720},
	}
}

// Load reads path over the defaults, so a partial file only changes the
// values it names.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// KeyMap converts the configured bindings. It returns nil when the file
// does not override the defaults.
func (c *Config) KeyMap() (gocube.KeyMap, error) {
	if len(c.Keys) == 0 {
		return nil, nil
	}
	km := make(gocube.KeyMap, len(c.Keys))
	for key, k := range c.Keys {
		axis, err := gocube.ParseAxis(k.Axis)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		dir, err := gocube.ParseDirection(k.Direction)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		km[key] = gocube.Binding{Axis: axis, Direction: dir}
	}
	return km, km.Validate()
}

// Options converts the lattice, animation and key settings to library
// options.
func (c *Config) Options() ([]gocube.Option, error) {
	easing, err := gocube.ParseEasing(c.Animation.Easing)
	if err != nil {
		return nil, err
	}
	opts := []gocube.Option{
		gocube.WithCubeSize(c.Lattice.CubeSize),
		gocube.WithGap(c.Lattice.Gap),
		gocube.WithTolerance(c.Lattice.Tolerance),
		gocube.WithDuration(time.Duration(c.Animation.DurationMs) * time.Millisecond),
		gocube.WithEasing(easing),
	}
	km, err := c.KeyMap()
	if err != nil {
		return nil, err
	}
	if km != nil {
		opts = append(opts, gocube.WithKeyMap(km))
	}
	return opts, nil
}

// Validate checks the settings by building a controller from them.
func (c *Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if _, err := gocube.NewController(opts...); err != nil {
		return err
	}
	if c.Server.FPS <= 0 || c.Server.FPS > 240 {
		return fmt.Errorf("server fps must be in 1..240, got %d", c.Server.FPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
