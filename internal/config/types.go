// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultIDScheme  = "counter"
	DefaultIDPrefix  = "T"
	DefaultAccent    = "99"
	DefaultLogDir    = "~/.tasklist/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Task ids
	IDScheme string `toml:"id_scheme"`
	IDPrefix string `toml:"id_prefix"`

	// Editing
	RejectBlankEdits bool `toml:"reject_blank_edits"`

	// Display
	Accent    string `toml:"accent"`
	AltScreen bool   `toml:"alt_screen"`

	// Logging configuration. An empty LogDir disables the session log.
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return []string{
		"id_scheme",
		"id_prefix",
		"reject_blank_edits",
		"accent",
		"alt_screen",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the string form of a configurable key.
func (c *Config) Value(key string) (string, bool) {
	switch key {
	case "id_scheme":
		return c.IDScheme, true
	case "id_prefix":
		return c.IDPrefix, true
	case "reject_blank_edits":
		return strconv.FormatBool(c.RejectBlankEdits), true
	case "accent":
		return c.Accent, true
	case "alt_screen":
		return strconv.FormatBool(c.AltScreen), true
	case "log_dir":
		return c.LogDir, true
	case "log_level":
		return c.LogLevel, true
	case "log_format":
		return c.LogFormat, true
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps), true
	case "log_caller":
		return strconv.FormatBool(c.LogCaller), true
	default:
		return "", false
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.IDScheme) {
	case "counter", "uuid":
	default:
		return fmt.Errorf("id_scheme: invalid value %q, must be one of: counter, uuid", c.IDScheme)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: invalid value %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("log_level: invalid value %q, must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.IDScheme = DefaultIDScheme
	cfg.IDPrefix = DefaultIDPrefix
	cfg.RejectBlankEdits = false
	cfg.Accent = DefaultAccent
	cfg.AltScreen = true
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}
