package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Task id scheme: "counter" (T1, T2, ...) or "uuid"
id_scheme = "counter"

# Prefix for counter ids
id_prefix = "T"

# Discard an edit whose trimmed text is blank instead of saving it
reject_blank_edits = false

# Accent color: ANSI 256 number or #rrggbb
accent = "99"

# Draw on the terminal alternate screen
alt_screen = true

# Session log directory (supports ~ and $VAR expansion, empty disables logs)
log_dir = "~/.tasklist/logs"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}
