// Package main is the entry point for the Clack editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/clack/internal/app"
	"github.com/dshills/clack/internal/config"
	"github.com/dshills/clack/internal/config/loader"
	"github.com/dshills/clack/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds the parsed command line.
type flags struct {
	configPath string
	logPath    string
	logLevel   string
	noWatch    bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	prefs, prefsErr := config.LoadPreferences(loader.DefaultFS(), f.configPath, loader.NewEnvLoader(loader.EnvPrefix))

	logger, closeLog, err := newLogger(f, prefs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logger.Info("clack %s (%s) starting", version, commit)
	for _, err := range unwrapAll(prefsErr) {
		logger.WithComponent("config").Warn("%v", err)
	}

	// Create terminal backend
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Backend:     term,
		Preferences: prefs,
		Logger:      logger,
		File:        f.file,
		Watch:       !f.noWatch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.RequestQuit()
		}
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to preferences file")
	flag.StringVar(&f.configPath, "c", config.DefaultPath(), "Path to preferences file (shorthand)")
	flag.StringVar(&f.logPath, "log", "", "Write a session log to this file")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&f.noWatch, "no-watch", false, "Do not watch the file for external changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Clack - a typewriter for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: clack [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  clack                       Start a new page (saved as Untitled.md)\n")
		fmt.Fprintf(os.Stderr, "  clack draft.md              Open or create draft.md\n")
		fmt.Fprintf(os.Stderr, "  clack -log clack.log a.md   Log the session to clack.log\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Clack %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	if f.logLevel != "" {
		if _, ok := app.ParseLogLevel(f.logLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
			os.Exit(1)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: clack edits one file at a time\n")
		os.Exit(1)
	}

	return f
}

// newLogger opens the session log. Flags override the [log] preferences;
// with no log file the logger discards everything.
func newLogger(f flags, prefs *config.Preferences) (*app.Logger, func(), error) {
	path := f.logPath
	if path == "" {
		path = prefs.Log.File
	}
	levelName := f.logLevel
	if levelName == "" {
		levelName = prefs.Log.Level
	}
	level, _ := app.ParseLogLevel(levelName)

	cfg := app.DefaultLoggerConfig()
	cfg.Level = level
	if path == "" {
		return app.NewSessionLogger(cfg), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	cfg.Output = file
	return app.NewSessionLogger(cfg), func() { _ = file.Close() }, nil
}

// unwrapAll flattens an errors.Join result.
func unwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, unwrapAll(e)...)
		}
		return out
	}
	return []error{err}
}
