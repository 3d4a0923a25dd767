// Package config manages epubreader configuration.
package config

import (
	"fmt"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Reader ReaderConfig `yaml:"reader"`
	Cover  CoverConfig  `yaml:"cover"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ReaderConfig controls book parsing and reading sessions.
type ReaderConfig struct {
	CacheSize int    `yaml:"cache_size"`
	Parser    string `yaml:"parser"` // xhtml, html or auto
	Strict    bool   `yaml:"strict"`
}

// CoverConfig controls cover thumbnail rendering.
type CoverConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Reader: ReaderConfig{
			CacheSize: 0,
			Parser:    "xhtml",
			Strict:    false,
		},
		Cover: CoverConfig{
			Width:   300,
			Height:  450,
			Quality: 85,
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	switch strings.ToLower(c.Reader.Parser) {
	case "xhtml", "html", "auto":
	default:
		return fmt.Errorf("invalid reader.parser %q: must be xhtml, html or auto", c.Reader.Parser)
	}
	if c.Reader.CacheSize < 0 {
		return fmt.Errorf("invalid reader.cache_size %d: must be >= 0", c.Reader.CacheSize)
	}
	if c.Cover.Width < 0 || c.Cover.Height < 0 {
		return fmt.Errorf("invalid cover size %dx%d: must be >= 0", c.Cover.Width, c.Cover.Height)
	}
	if c.Cover.Quality < 1 || c.Cover.Quality > 100 {
		return fmt.Errorf("invalid cover.quality %d: must be 1-100", c.Cover.Quality)
	}
	return nil
}
