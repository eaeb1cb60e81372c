// Package config loads screenpilot configuration from a YAML file, with
// environment-variable overrides and defaults for every setting.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Inference service providers.
const (
	ProviderLMStudio = "lmstudio"
	ProviderGemini   = "gemini"
)

// Config is the full application configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Capture CaptureConfig `mapstructure:"capture"`
	Loop    LoopConfig    `mapstructure:"loop"`
	Pointer PointerConfig `mapstructure:"pointer"`
	Hotkeys HotkeyConfig  `mapstructure:"hotkeys"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// ServiceConfig describes the vision inference service.
type ServiceConfig struct {
	Provider    string        `mapstructure:"provider"` // lmstudio, gemini
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CaptureConfig controls screenshot downscaling and encoding.
type CaptureConfig struct {
	MaxDimension int `mapstructure:"max_dimension"`
	JPEGQuality  int `mapstructure:"jpeg_quality"`
}

// LoopConfig controls automation loop timing.
type LoopConfig struct {
	Interval    time.Duration `mapstructure:"interval"`     // wait between cycles
	StopPoll    time.Duration `mapstructure:"stop_poll"`    // stop-flag check granularity during the wait
	JoinTimeout time.Duration `mapstructure:"join_timeout"` // max time Stop blocks waiting for the worker
}

// PointerConfig controls cursor movement.
type PointerConfig struct {
	MoveDuration time.Duration `mapstructure:"move_duration"`
}

// HotkeyConfig holds the global hotkey combos, e.g. "ctrl+m".
type HotkeyConfig struct {
	Start string `mapstructure:"start"`
	Stop  string `mapstructure:"stop"`
}

// LoggerConfig controls console and file logging.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // console, json
	File       string `mapstructure:"file"`   // empty = console only
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.provider", ProviderLMStudio)
	v.SetDefault("service.base_url", "http://localhost:1234/v1")
	v.SetDefault("service.api_key", "lm-studio")
	v.SetDefault("service.model", "")
	v.SetDefault("service.max_tokens", 600)
	v.SetDefault("service.temperature", 0.1)
	v.SetDefault("service.timeout", 60*time.Second)

	v.SetDefault("capture.max_dimension", 1280)
	v.SetDefault("capture.jpeg_quality", 85)

	v.SetDefault("loop.interval", 3*time.Second)
	v.SetDefault("loop.stop_poll", 100*time.Millisecond)
	v.SetDefault("loop.join_timeout", 5*time.Second)

	v.SetDefault("pointer.move_duration", 400*time.Millisecond)

	v.SetDefault("hotkeys.start", "ctrl+m")
	v.SetDefault("hotkeys.stop", "ctrl+e")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 14)
	v.SetDefault("logger.compress", false)
}

// Load reads configuration from path (or $HOME/.screenpilot.yaml when path is
// empty), applies SCREENPILOT_* environment overrides, and validates the
// result. A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".screenpilot")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCREENPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints not expressible as defaults.
func (c *Config) Validate() error {
	switch c.Service.Provider {
	case ProviderLMStudio, ProviderGemini:
	default:
		return fmt.Errorf("unknown service provider: %q (expected %s or %s)",
			c.Service.Provider, ProviderLMStudio, ProviderGemini)
	}
	if c.Capture.MaxDimension < 1 {
		return fmt.Errorf("capture.max_dimension must be positive, got %d", c.Capture.MaxDimension)
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return fmt.Errorf("capture.jpeg_quality must be in 1..100, got %d", c.Capture.JPEGQuality)
	}
	if c.Loop.Interval <= 0 {
		return fmt.Errorf("loop.interval must be positive, got %s", c.Loop.Interval)
	}
	if c.Loop.StopPoll <= 0 || c.Loop.StopPoll > c.Loop.Interval {
		return fmt.Errorf("loop.stop_poll must be in (0, %s], got %s", c.Loop.Interval, c.Loop.StopPoll)
	}
	if c.Loop.JoinTimeout <= 0 {
		return fmt.Errorf("loop.join_timeout must be positive, got %s", c.Loop.JoinTimeout)
	}
	if c.Pointer.MoveDuration < 0 {
		return fmt.Errorf("pointer.move_duration must not be negative, got %s", c.Pointer.MoveDuration)
	}
	if c.Hotkeys.Start == "" || c.Hotkeys.Stop == "" {
		return fmt.Errorf("hotkeys.start and hotkeys.stop must both be set")
	}
	if c.Hotkeys.Start == c.Hotkeys.Stop {
		return fmt.Errorf("hotkeys.start and hotkeys.stop must differ, both are %q", c.Hotkeys.Start)
	}
	return nil
}
