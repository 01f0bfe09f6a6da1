package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TASKLIST_"

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	field string
	apply func(cfg *Config, value string) error
}

func stringEnv(target func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		*target(cfg) = value
		return nil
	}
}

func boolEnv(target func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		b, err := boolFromString(value)
		if err != nil {
			return err
		}
		*target(cfg) = b
		return nil
	}
}

func envBindings() []envBinding {
	return []envBinding{
		{"id_scheme", stringEnv(func(c *Config) *string { return &c.IDScheme })},
		{"id_prefix", stringEnv(func(c *Config) *string { return &c.IDPrefix })},
		{"reject_blank_edits", boolEnv(func(c *Config) *bool { return &c.RejectBlankEdits })},
		{"accent", stringEnv(func(c *Config) *string { return &c.Accent })},
		{"alt_screen", boolEnv(func(c *Config) *bool { return &c.AltScreen })},
		{"log_dir", stringEnv(func(c *Config) *string { return &c.LogDir })},
		{"log_level", stringEnv(func(c *Config) *string { return &c.LogLevel })},
		{"log_format", stringEnv(func(c *Config) *string { return &c.LogFormat })},
		{"log_timestamps", boolEnv(func(c *Config) *bool { return &c.LogTimestamps })},
		{"log_caller", boolEnv(func(c *Config) *bool { return &c.LogCaller })},
	}
}

// EnvName returns the environment variable for a config key.
func EnvName(field string) string {
	return EnvPrefix + strings.ToUpper(field)
}

// loadFromEnv overrides config from TASKLIST_* environment variables.
// A variable that is set but empty counts as unset, except for log_dir
// where empty disables the session log.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	for _, b := range envBindings() {
		name := EnvName(b.field)
		value, ok := os.LookupEnv(name)
		if !ok || (value == "" && b.field != "log_dir") {
			continue
		}
		if err := b.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		sources[b.field] = SourceEnv
	}
	return nil
}

func boolFromString(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", v)
	}
	return b, nil
}
