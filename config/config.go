// Package config provides configuration loading and access for the tree.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a loaded configuration cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
	Tree      TreeConfig      `yaml:"tree"`
	Sphere    SphereConfig    `yaml:"sphere"`
	Motion    MotionConfig    `yaml:"motion"`
	Ornament  OrnamentConfig  `yaml:"ornament"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the orbit camera setup.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"` // Initial distance from origin (camera starts at (0,0,distance))
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Fovy        float64 `yaml:"fovy"`      // Vertical field of view in degrees
	MaxPolar    float64 `yaml:"max_polar"` // Max polar angle from +Y in radians
	Frequency   float64 `yaml:"frequency"` // Spring angular frequency for orbit smoothing
	Damping     float64 `yaml:"damping"`   // Spring damping ratio
}

// ParticlesConfig holds particle count and appearance.
type ParticlesConfig struct {
	Count int     `yaml:"count"`
	Size  float64 `yaml:"size"` // Rendered edge length
}

// TreeConfig holds the spiral cone parameters.
type TreeConfig struct {
	AngleStep float64 `yaml:"angle_step"` // Radians per particle index
	Height    float64 `yaml:"height"`
	Taper     float64 `yaml:"taper"`  // radius = (height - y) * taper
	Offset    float64 `yaml:"offset"` // Subtracted from y to recenter the cone
}

// SphereConfig holds the exploded field parameters.
type SphereConfig struct {
	Radius float64 `yaml:"radius"`
}

// MotionConfig holds damping and spin parameters.
type MotionConfig struct {
	ParticleSmoothTime float64 `yaml:"particle_smooth_time"` // Damping time constant for particles (seconds)
	OrnamentSmoothTime float64 `yaml:"ornament_smooth_time"` // Damping time constant for ornaments (seconds)
	SpinX              float64 `yaml:"spin_x"`               // rad/s about X
	SpinY              float64 `yaml:"spin_y"`               // rad/s about Y
	Epsilon            float64 `yaml:"epsilon"`              // Snap distance for damping
	MaxDelta           float64 `yaml:"max_delta"`            // Frame delta clamp (seconds, 0 = none)
}

// OrnamentConfig holds photo ornament placement parameters.
type OrnamentConfig struct {
	PresentedExpansion float64    `yaml:"presented_expansion"` // Rest position multiplier when exploded
	PresentedScale     float64    `yaml:"presented_scale"`
	RestScale          float64    `yaml:"rest_scale"`
	RotationStep       float64    `yaml:"rotation_step"` // Y rotation per photo index
	RestBox            RestBoxCfg `yaml:"rest_box"`
}

// RestBoxCfg bounds randomly sampled photo rest positions.
// X and Z are uniform in [-half, half), Y is uniform in [0, height).
type RestBoxCfg struct {
	HalfWidth float64 `yaml:"half_width"`
	Height    float64 `yaml:"height"`
	HalfDepth float64 `yaml:"half_depth"`
}

// GestureConfig holds the gesture bridge parameters.
type GestureConfig struct {
	PollInterval  float64 `yaml:"poll_interval"` // Seconds between recognition ticks
	MinHands      int     `yaml:"min_hands"`     // Hands that must agree to trigger
	MinScore      float64 `yaml:"min_score"`     // Classifier score floor
	ExplodeLabel  string  `yaml:"explode_label"`
	AssembleLabel string  `yaml:"assemble_label"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`        // Seconds per stats window
	ConvergenceEpsilon  float64 `yaml:"convergence_epsilon"` // Distance under which a particle counts as settled
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT          float64 // 1 / TargetFPS, fixed headless step
	ScreenW32   float32
	ScreenH32   float32
	WindowTicks int // Telemetry.StatsWindow in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks startup preconditions.
func (c *Config) Validate() error {
	switch {
	case c.Particles.Count <= 0:
		return fmt.Errorf("%w: particles.count must be positive, got %d", ErrInvalid, c.Particles.Count)
	case c.Motion.ParticleSmoothTime <= 0:
		return fmt.Errorf("%w: motion.particle_smooth_time must be positive", ErrInvalid)
	case c.Motion.OrnamentSmoothTime <= 0:
		return fmt.Errorf("%w: motion.ornament_smooth_time must be positive", ErrInvalid)
	case c.Sphere.Radius <= 0:
		return fmt.Errorf("%w: sphere.radius must be positive", ErrInvalid)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: screen.target_fps must be positive", ErrInvalid)
	case c.Gesture.MinHands <= 0:
		return fmt.Errorf("%w: gesture.min_hands must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.WindowTicks = int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if c.Derived.WindowTicks < 1 {
		c.Derived.WindowTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
