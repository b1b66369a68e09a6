// Package config handles loading and validating the viewer configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/bezier-trace/pkg/math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display settings. Width and Height also define the
// world space control points live in; the terminal viewer scales from it.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// Point is a control point as written in YAML.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// AnimationConfig describes the curve and how long tracing it takes.
type AnimationConfig struct {
	Duration      time.Duration `yaml:"duration"`
	ControlPoints []Point       `yaml:"control_points"`
	// Step is the fixed tick used by the headless runner.
	Step time.Duration `yaml:"step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1920,
			Height:     1080,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Animation: AnimationConfig{
			Duration: 10 * time.Second,
			ControlPoints: []Point{
				{100, 700},
				{100, 175},
				{400, 175},
				{600, 525},
				{1200, 525},
				{800, 350},
				{900, 450},
			},
			Step: 16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot drive an animation.
func (c *Config) Validate() error {
	switch {
	case c.Animation.Duration <= 0:
		return fmt.Errorf("%w: animation.duration must be positive, got %v", ErrInvalid, c.Animation.Duration)
	case len(c.Animation.ControlPoints) < 2:
		return fmt.Errorf("%w: animation.control_points needs at least 2 points, got %d", ErrInvalid, len(c.Animation.ControlPoints))
	case c.Animation.Step <= 0:
		return fmt.Errorf("%w: animation.step must be positive, got %v", ErrInvalid, c.Animation.Step)
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: graphics size must be positive, got %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FPSLimit < 0:
		return fmt.Errorf("%w: graphics.fps_limit must not be negative, got %d", ErrInvalid, c.Graphics.FPSLimit)
	}
	return nil
}

// ControlPoints returns the configured control points as vectors.
func (c *Config) ControlPoints() []math.Vec2 {
	pts := make([]math.Vec2, len(c.Animation.ControlPoints))
	for i, p := range c.Animation.ControlPoints {
		pts[i] = math.V2(p.X, p.Y)
	}
	return pts
}

// DurationSeconds returns the animation duration in seconds.
func (c *Config) DurationSeconds() float32 {
	return float32(c.Animation.Duration.Seconds())
}

// StepSeconds returns the headless tick in seconds.
func (c *Config) StepSeconds() float32 {
	return float32(c.Animation.Step.Seconds())
}
