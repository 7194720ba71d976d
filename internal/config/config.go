// SPDX-License-Identifier: EPL-2.0

// Package config loads the audpool command's settings with viper: defaults,
// then an optional YAML file, then AUDPOOL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/engine"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g.
// AUDPOOL_OUTPUT_SAMPLE_RATE.
const EnvPrefix = "AUDPOOL"

// Config holds all configuration for the application
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Master  MasterConfig  `mapstructure:"master"`
	Logging LoggingConfig `mapstructure:"logging"`

	// BaseURL resolves relative sound sources.
	BaseURL string        `mapstructure:"base_url"`
	Sounds  []SoundConfig `mapstructure:"sounds"`
}

// OutputConfig describes the shared audio context.
type OutputConfig struct {
	SampleRate     int  `mapstructure:"sample_rate"`
	Channels       int  `mapstructure:"channels"`
	StartSuspended bool `mapstructure:"start_suspended"`
}

type MasterConfig struct {
	Volume float64 `mapstructure:"volume"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SoundConfig is one sound to register at startup.
type SoundConfig struct {
	Name     string         `mapstructure:"name"`
	Src      []string       `mapstructure:"src"`
	Spatial  bool           `mapstructure:"spatial"`
	Loop     bool           `mapstructure:"loop"`
	Volume   *float64       `mapstructure:"volume"`
	PoolSize int            `mapstructure:"pool_size"`
	AutoPlay bool           `mapstructure:"autoplay"`
	Position *PositionValue `mapstructure:"position"`
}

type PositionValue struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.sample_rate", engine.DefaultSampleRate)
	v.SetDefault("output.channels", engine.DefaultChannels)
	v.SetDefault("output.start_suspended", true)
	v.SetDefault("master.volume", 1.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads the configuration. An empty path searches for config.yaml in
// the working directory, $HOME/.audpool and /etc/audpool; a missing file
// there is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	return LoadViper(viper.New(), path)
}

// LoadViper is Load on a caller supplied viper instance, so command flags
// bound to it take part.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.audpool")
		v.AddConfigPath("/etc/audpool")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Debug("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration and returns the first problem as an
// *Error.
func (c *Config) Validate() error {
	if c.Output.SampleRate <= 0 {
		return &Error{Field: "output.sample_rate", Message: "must be positive"}
	}
	if c.Output.Channels != 1 && c.Output.Channels != 2 {
		return &Error{Field: "output.channels", Message: "must be 1 or 2"}
	}
	if c.Master.Volume < 0 {
		return &Error{Field: "master.volume", Message: "must not be negative"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return &Error{Field: "logging.format", Message: "must be text or json"}
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return &Error{Field: "base_url", Message: err.Error()}
		}
	}

	for i, s := range c.Sounds {
		field := fmt.Sprintf("sounds[%d]", i)
		if len(s.Src) == 0 {
			return &Error{Field: field + ".src", Message: "at least one source is required"}
		}
		if s.PoolSize < 0 {
			return &Error{Field: field + ".pool_size", Message: "must not be negative"}
		}
		if s.Position != nil && !s.Spatial {
			return &Error{Field: field + ".position", Message: "only spatial sounds have a position"}
		}
	}
	return nil
}

// Engine returns the context options for this configuration.
func (c *Config) Engine() engine.Options {
	return engine.Options{
		SampleRate:     c.Output.SampleRate,
		Channels:       c.Output.Channels,
		StartSuspended: c.Output.StartSuspended,
	}
}

// Entries converts the configured sounds, with sources resolved against
// BaseURL.
func (c *Config) Entries() []audpool.Entry {
	var base *url.URL
	if c.BaseURL != "" {
		base, _ = url.Parse(c.BaseURL)
	}

	out := make([]audpool.Entry, 0, len(c.Sounds))
	for _, s := range c.Sounds {
		e := audpool.Entry{
			Kind: audpool.Plain,
			Name: s.Name,
			Options: audpool.Options{
				Loop:     s.Loop,
				Volume:   s.Volume,
				PoolSize: s.PoolSize,
				AutoPlay: s.AutoPlay,
			},
		}
		if s.Spatial {
			e.Kind = audpool.Spatial
		}
		if s.Position != nil {
			e.Options.Position = &audpool.Point{X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z}
		}
		for _, src := range s.Src {
			e.Src = append(e.Src, resolve(base, src))
		}
		out = append(out, e)
	}
	return out
}

func resolve(base *url.URL, src string) string {
	if base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// Error represents a configuration validation error
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
