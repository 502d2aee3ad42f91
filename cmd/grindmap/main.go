// Package main is the entry point for the grindmap level editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/grindmap/internal/app"
	"github.com/dshills/grindmap/internal/config"
	"github.com/dshills/grindmap/internal/logging"
	"github.com/dshills/grindmap/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	logger, closer, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closer.Close()
	logging.Set(logger)

	application, err := app.New(app.Options{Config: cfg, File: f.file, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupLogging opens the configured log file. Without one, logs are
// discarded since the terminal belongs to the editor.
func setupLogging(cfg *config.Config) (*logging.Logger, io.Closer, error) {
	if cfg.Logging.File == "" {
		return logging.Null, io.NopCloser(nil), nil
	}
	return logging.OpenFile(cfg.Logging.File, cfg.LogLevel())
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	defaultConfig := os.Getenv("GRINDMAP_CONFIG")
	if defaultConfig == "" {
		defaultConfig = config.DefaultPath()
	}

	flag.StringVar(&f.configPath, "config", defaultConfig, "Path to configuration file")
	flag.StringVar(&f.configPath, "c", defaultConfig, "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error), overrides the config file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "grindmap - Cybergrind arena editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: grindmap [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  grindmap                    Start with an empty arena\n")
		fmt.Fprintf(os.Stderr, "  grindmap arena.cgp          Open a pattern file\n")
		fmt.Fprintf(os.Stderr, "  grindmap -log-level debug   Log everything to the configured log file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("grindmap %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.logLevel != "" {
		if _, ok := logging.ParseLevel(f.logLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
			os.Exit(1)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: only one file can be opened at a time\n")
		os.Exit(1)
	}

	return f
}
