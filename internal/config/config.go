// internal/config/config.go

// Package config defines the CLI's configuration surface: logging, engine
// tuning and replay settings, loaded through viper from file, environment and
// flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	Replay ReplayConfig `mapstructure:"replay" yaml:"replay"`
}

// LoggerConfig controls console and file logging.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// LogFile enables an additional rotated JSON log file when set.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// EngineConfig carries drag engine tuning. Values pass through to the engine
// unvalidated; zero disables the corresponding behavior.
type EngineConfig struct {
	DragThreshold  float64       `mapstructure:"drag_threshold" yaml:"drag_threshold"`
	DeferTargeting time.Duration `mapstructure:"defer_targeting" yaml:"defer_targeting"`
	MoveThrottle   time.Duration `mapstructure:"move_throttle" yaml:"move_throttle"`
}

// ReplayConfig configures trace playback.
type ReplayConfig struct {
	// ItemSelector and TargetSelector restrict what can be dragged and where
	// it can be dropped. Empty means the raw element under the pointer.
	ItemSelector   string `mapstructure:"item_selector" yaml:"item_selector"`
	TargetSelector string `mapstructure:"target_selector" yaml:"target_selector"`
	Realtime       bool   `mapstructure:"realtime" yaml:"realtime"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "dragsense")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("engine.drag_threshold", 4.0)
	v.SetDefault("engine.defer_targeting", "150ms")
	v.SetDefault("engine.move_throttle", "0s")

	v.SetDefault("replay.item_selector", "")
	v.SetDefault("replay.target_selector", "")
	v.SetDefault("replay.realtime", false)
}

// NewConfigFromViper unmarshals and validates a configuration from the given
// viper instance.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the CLI cannot act on. Engine tuning is passed
// through deliberately unvalidated.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger format %q, want console or json", c.Logger.Format)
	}
	return nil
}
