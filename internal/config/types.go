// Package config provides configuration loading for kazari.
//
// Tunables are loaded with Viper, supporting a YAML config file and
// environment variable overrides, with defaults that work out of the box.
// The room layout (spots and camera poses) is a separate YAML file read
// directly; see layout.go.
//
// Key types:
//   - [Config] is the root tunables container
//   - [Loader] handles Viper-based loading
//   - [Layout] describes the room's spots and camera pose targets
//
// Configuration priority (highest to lowest):
//  1. Environment variables (KAZARI_ prefix)
//  2. Config file specified by KAZARI_CONFIG_PATH
//  3. ./kazari.yaml
//  4. [DefaultConfig] defaults
package config

import "fmt"

// Config is the root tunables container.
type Config struct {
	// Threshold is the placed-item count required to complete the room.
	// Default: 3.
	Threshold int `mapstructure:"threshold"`

	// SuccessHold is the post-activity hold duration in seconds.
	// Default: 2.0.
	SuccessHold float64 `mapstructure:"success_hold"`

	// SkipEnabled controls whether player input can shorten the success
	// hold. Default: true.
	SkipEnabled bool `mapstructure:"skip_enabled"`

	// TickRate is the fixed scheduler rate in ticks per second.
	// Default: 60.
	TickRate int `mapstructure:"tick_rate"`

	// Camera contains transition engine tunables.
	Camera CameraConfig `mapstructure:"camera"`

	// LayoutPath is an explicit room layout file path. Empty means
	// auto-discovery; see [ResolveLayoutPath].
	LayoutPath string `mapstructure:"layout_path"`
}

// CameraConfig contains camera transition tunables.
type CameraConfig struct {
	// Duration is the transition length in seconds. Default: 1.5.
	Duration float64 `mapstructure:"duration"`

	// Easing is the response curve name: "linear", "smoothstep",
	// "ease-in-out", or "ease-out". Default: "smoothstep".
	Easing string `mapstructure:"easing"`
}

// DefaultConfig returns a [Config] with working defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold:   3,
		SuccessHold: 2.0,
		SkipEnabled: true,
		TickRate:    60,
		Camera: CameraConfig{
			Duration: 1.5,
			Easing:   "smoothstep",
		},
	}
}

// Validate reports the first configuration error, or nil.
func (c *Config) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("config: threshold must be positive, got %d", c.Threshold)
	}
	if c.SuccessHold <= 0 {
		return fmt.Errorf("config: success_hold must be positive, got %g", c.SuccessHold)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Camera.Duration < 0 {
		return fmt.Errorf("config: camera.duration must not be negative, got %g", c.Camera.Duration)
	}
	return nil
}

// TickInterval returns the per-tick timestep in seconds.
func (c *Config) TickInterval() float64 {
	return 1.0 / float64(c.TickRate)
}
