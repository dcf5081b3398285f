// Package config loads service settings from an optional YAML file,
// defaults and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/tone"
)

// Corpus sources
const (
	SourceEmbedded = "embedded"
	SourceJSON     = "json"
	SourceSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Rhyme     RhymeConfig     `mapstructure:"rhyme"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// CorpusConfig selects where the reference table is read from.
type CorpusConfig struct {
	Source       string `mapstructure:"source"` // embedded, json or sqlite
	Path         string `mapstructure:"path"`
	ReadingsPath string `mapstructure:"readings_path"`
}

// RhymeConfig holds query defaults
type RhymeConfig struct {
	DefaultLimit    int    `mapstructure:"default_limit"`
	MaxLimit        int    `mapstructure:"max_limit"`
	DefaultSystem   string `mapstructure:"default_system"`
	StrictPolyphony bool   `mapstructure:"strict_polyphony"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LogConfig selects the log level and encoder
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // console or json; empty follows the level
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("corpus.source", SourceEmbedded)
	v.SetDefault("corpus.path", "")
	v.SetDefault("corpus.readings_path", "")
	v.SetDefault("rhyme.default_limit", 50)
	v.SetDefault("rhyme.max_limit", 1000)
	v.SetDefault("rhyme.default_system", string(tone.DefaultSystem))
	v.SetDefault("rhyme.strict_polyphony", false)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("server.port", p)
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		v.Set("server.mode", mode)
	}

	// Corpus
	if source := os.Getenv("TINCI_CORPUS_SOURCE"); source != "" {
		v.Set("corpus.source", source)
	}
	if path := os.Getenv("TINCI_CORPUS_PATH"); path != "" {
		v.Set("corpus.path", path)
	}
	if path := os.Getenv("TINCI_READINGS_PATH"); path != "" {
		v.Set("corpus.readings_path", path)
	}

	// Logging
	if level := os.Getenv("TINCI_LOG_LEVEL"); level != "" {
		v.Set("log.level", level)
	}
	if format := os.Getenv("TINCI_LOG_FORMAT"); format != "" {
		v.Set("log.format", format)
	}

	// Rate Limit
	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		v.Set("rate_limit.enabled", enabled == "true")
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			v.Set("rate_limit.requests_per_second", r)
		}
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			v.Set("rate_limit.burst", b)
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release', or 'test')", c.Server.Mode)
	}

	switch c.Corpus.Source {
	case SourceEmbedded:
	case SourceJSON, SourceSQLite:
		if c.Corpus.Path == "" {
			return fmt.Errorf("corpus path cannot be empty for source %s", c.Corpus.Source)
		}
	default:
		return fmt.Errorf("invalid corpus source: %s (must be 'embedded', 'json', or 'sqlite')", c.Corpus.Source)
	}

	if c.Rhyme.DefaultLimit <= 0 {
		return fmt.Errorf("rhyme default_limit must be positive")
	}
	if c.Rhyme.MaxLimit < c.Rhyme.DefaultLimit {
		return fmt.Errorf("rhyme max_limit (%d) must not be below default_limit (%d)", c.Rhyme.MaxLimit, c.Rhyme.DefaultLimit)
	}
	if _, err := tone.ParseSystem(c.Rhyme.DefaultSystem); err != nil {
		return fmt.Errorf("rhyme default_system: %w", err)
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit requests_per_second must be positive")
	}

	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !logger.ValidFormat(c.Log.Format) {
		return fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", c.Log.Format)
	}

	return nil
}

// Logging returns the logger options for a binary.
func (c *Config) Logging(service string) logger.Options {
	return logger.Options{Level: c.Log.Level, Format: c.Log.Format, Service: service}
}

// System returns the configured default tone system.
func (c *Config) System() tone.System {
	sys, err := tone.ParseSystem(c.Rhyme.DefaultSystem)
	if err != nil {
		return tone.DefaultSystem
	}
	return sys
}
