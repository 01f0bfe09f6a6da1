// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/script"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
	"github.com/nibzard/tasklist-go/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		switch infoRequest(args) {
		case "help":
			printUsage(fs, os.Stdout)
			fmt.Fprintf(os.Stderr, "\nWarning: loading config: %v\n", err)
			return nil
		case "version":
			return versionCommand(os.Stdout)
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// No args or a leading flag means "run".
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "replay":
		return replayCommand(cfg, remainingArgs, os.Stdout)
	case "config":
		return configCommand(cws, remainingArgs, os.Stdout)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs, os.Stdout)
	case "version":
		return versionCommand(os.Stdout)
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts the interactive task list.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if !ui.IsTTY(os.Stdout) {
		return ui.ErrNoTTY
	}

	session, logger, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, cfg, store, logger)
}

// replayCommand applies a command script without a terminal and prints
// the final screen.
func replayCommand(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tasklist replay", flag.ContinueOnError)
	fs.SetOutput(w)
	quiet := fs.Bool("q", false, "Print only the summary line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("replay requires exactly one script file")
	}

	s, err := script.Load(remaining[0])
	if err != nil {
		return err
	}

	session, logger, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()
	logger.Info("Replaying script", "path", remaining[0], "commands", len(s.Commands))

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	state := script.Run(s, store)

	if *quiet {
		total, done := todo.Summary(state)
		fmt.Fprintf(w, "%d of %d done\n", done, total)
		return nil
	}

	renderer := view.NewRenderer(w, view.Theme{Accent: cfg.Accent}, view.WithColorProfile(termenv.Ascii))
	_, err = io.WriteString(w, renderer.Render(view.Project(state), view.Focus{Area: view.AreaForm}))
	return err
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	fs.SetOutput(w)
	example := fs.Bool("example", false, "Print a sample configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		_, err := io.WriteString(w, config.ExampleConfig())
		return err
	}

	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "# no config files found")
	}
	for _, path := range cws.Files {
		fmt.Fprintf(w, "# read %s\n", path)
	}
	for _, key := range config.Fields() {
		value, _ := cws.Config.Value(key)
		fmt.Fprintf(w, "%-20s = %-24q # %s\n", key, value, cws.Sources[key])
	}
	return nil
}

// tailCommand prints the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tasklist tail", flag.ContinueOnError)
	fs.SetOutput(w)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.LogDir == "" {
		fmt.Fprintln(w, "Logging is disabled (log_dir is empty).")
		return nil
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	fmt.Fprintf(w, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(w, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(w)

	return logging.TailLog(ctx, w, logPath, *n, *follow)
}

// infoRequest scans the leading flags and first command word for a help or
// version request without loading config, so both still work when a config
// file is broken. It returns "help", "version" or "".
func infoRequest(args []string) string {
	for _, arg := range args {
		switch arg {
		case "-h", "-help", "--help", "help":
			return "help"
		case "-v", "-version", "--version", "version":
			return "version"
		}
		if !strings.HasPrefix(arg, "-") {
			return ""
		}
	}
	return ""
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	_, err := fmt.Fprintf(w, "tasklist version %s\n", Version)
	return err
}

// openSession opens the session log named by cfg. When logging is
// disabled the returned session is nil and the logger discards.
func openSession(cfg *config.Config) (*logging.SessionLog, *log.Logger, error) {
	if cfg.LogDir == "" {
		return nil, logging.Discard(), nil
	}
	session, err := logging.OpenSession(cfg.LogDir, loggingOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("opening session log: %w", err)
	}
	return session, session.Logger, nil
}

func loggingOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	return opts
}

func newStore(cfg *config.Config, logger *log.Logger) (*todo.Store, error) {
	ids, err := todo.NewIDGenerator(cfg.IDScheme, cfg.IDPrefix)
	if err != nil {
		return nil, err
	}
	return todo.NewStore(
		todo.WithIDGenerator(ids),
		todo.WithLogger(logger),
		todo.WithRejectBlankEdits(cfg.RejectBlankEdits),
	), nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - a keyboard driven task manager for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run              Start the task list (default command)")
	fmt.Fprintln(w, "  replay <script>  Apply a JSON command script and print the result")
	fmt.Fprintln(w, "  config           Show effective configuration and sources")
	fmt.Fprintln(w, "  tail             Print the latest session log")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay Options:")
	fmt.Fprintln(w, "  -q    Print only the summary line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example    Print a sample configuration file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -n int    Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -f        Follow the log")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables use the TASKLIST_ prefix, e.g. TASKLIST_LOG_DIR.")
}
