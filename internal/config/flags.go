package config

import (
	"flag"
)

// flagToSource maps flag names to config keys.
var flagToSource = map[string]string{
	"id-scheme":          "id_scheme",
	"id-prefix":          "id_prefix",
	"reject-blank-edits": "reject_blank_edits",
	"accent":             "accent",
	"alt-screen":         "alt_screen",
	"log-dir":            "log_dir",
	"log-level":          "log_level",
	"log-format":         "log_format",
	"log-timestamps":     "log_timestamps",
	"log-caller":         "log_caller",
}

// parseFlags defines the config flags on fs, seeded with the values
// layered so far, parses args and records which flags were set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(App, flag.ContinueOnError)
	}

	// Task ids
	fs.StringVar(&cfg.IDScheme, "id-scheme", cfg.IDScheme, "Task id scheme (counter, uuid)")
	fs.StringVar(&cfg.IDPrefix, "id-prefix", cfg.IDPrefix, "Prefix for counter ids")

	// Editing
	fs.BoolVar(&cfg.RejectBlankEdits, "reject-blank-edits", cfg.RejectBlankEdits, "Discard edits that would leave a task blank")

	// Display
	fs.StringVar(&cfg.Accent, "accent", cfg.Accent, "Accent color (ANSI number or #hex)")
	fs.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the terminal alternate screen")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory (empty disables logging)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagToSource[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
