package gocube

import (
	"fmt"
	"time"
)

// Default geometry and animation settings.
const (
	DefaultCubeSize = 0.8
	DefaultGap      = 0.02
	DefaultDuration = 500 * time.Millisecond
)

// Option configures a Lattice or Controller.
type Option func(*config)

type config struct {
	cubeSize  float64
	gap       float64
	tolerance float64 // 0 means spacing/4
	duration  time.Duration
	easing    Easing
	keyMap    KeyMap
}

func defaultConfig() *config {
	return &config{
		cubeSize: DefaultCubeSize,
		gap:      DefaultGap,
		duration: DefaultDuration,
		easing:   QuadraticInOut,
		keyMap:   DefaultKeyMap(),
	}
}

func buildConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.keyMap = cfg.keyMap.Normalized()
	return cfg, nil
}

func (c *config) spacing() float64 {
	return c.cubeSize + c.gap
}

func (c *config) eps() float64 {
	if c.tolerance > 0 {
		return c.tolerance
	}
	return c.spacing() / 4
}

func (c *config) validate() error {
	if c.cubeSize <= 0 {
		return fmt.Errorf("%w: cube size must be positive, got %v", ErrInvalidOption, c.cubeSize)
	}
	if c.gap < 0 {
		return fmt.Errorf("%w: gap must not be negative, got %v", ErrInvalidOption, c.gap)
	}
	if c.tolerance < 0 || c.tolerance >= c.spacing()/2 {
		return fmt.Errorf("%w: tolerance must be below half the spacing (%v), got %v",
			ErrInvalidOption, c.spacing()/2, c.tolerance)
	}
	if c.duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidOption, c.duration)
	}
	if c.easing == nil {
		return fmt.Errorf("%w: easing must not be nil", ErrInvalidOption)
	}
	return c.keyMap.Validate()
}

// WithCubeSize sets the edge length of each cube (default 0.8).
func WithCubeSize(size float64) Option {
	return func(c *config) {
		c.cubeSize = size
	}
}

// WithGap sets the gap between neighbouring cubes (default 0.02).
// Lattice spacing is cube size plus gap.
func WithGap(gap float64) Option {
	return func(c *config) {
		c.gap = gap
	}
}

// WithTolerance sets the layer-selection tolerance ε. It must be positive
// and below half the lattice spacing. The default is a quarter of the spacing.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		c.tolerance = eps
	}
}

// WithDuration sets how long one quarter turn animates (default 500ms).
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		c.duration = d
	}
}

// WithEasing sets the easing curve of the turn animation
// (default QuadraticInOut).
func WithEasing(e Easing) Option {
	return func(c *config) {
		c.easing = e
	}
}

// WithKeyMap replaces the keyboard bindings used by Controller.HandleKey.
func WithKeyMap(km KeyMap) Option {
	return func(c *config) {
		c.keyMap = km
	}
}
