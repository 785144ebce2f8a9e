package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader loads [Config] via Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults registered and KAZARI_
// environment overrides enabled (e.g. KAZARI_SUCCESS_HOLD=1.0,
// KAZARI_CAMERA_EASING=linear).
func NewLoader() *Loader {
	v := viper.New()

	v.SetDefault("threshold", 3)
	v.SetDefault("success_hold", 2.0)
	v.SetDefault("skip_enabled", true)
	v.SetDefault("tick_rate", 60)
	v.SetDefault("camera.duration", 1.5)
	v.SetDefault("camera.easing", "smoothstep")
	v.SetDefault("layout_path", "")

	v.SetEnvPrefix("KAZARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads configuration and returns a validated [Config].
//
// The configPath parameter is an explicit file path; pass empty for
// discovery (KAZARI_CONFIG_PATH, then ./kazari.yaml). A missing discovered
// file is not an error: defaults plus environment overrides apply.
func (l *Loader) Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("KAZARI_CONFIG_PATH")
	}

	if configPath != "" {
		l.v.SetConfigFile(configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		l.v.SetConfigName("kazari")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// No config file; defaults and env overrides apply.
		}
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
