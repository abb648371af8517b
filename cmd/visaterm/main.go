// Command visaterm is an interactive terminal for a simulated
// instrument session.
//
// It opens a session against the built-in instrument simulator and
// exposes the session operations as terminal commands: writes, reads,
// queries, attribute access and event handling. Session traffic can be
// captured to a trace file for later inspection.
//
// Usage:
//
//	visaterm [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-resource string   Resource string to open
//	-trace string      Trace capture file path
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Start with defaults
//	visaterm
//
//	# Script responses from a config file and capture a trace
//	visaterm -config scope.yaml -trace session.cbor
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/log"
	"github.com/Snyder005/govisa/pkg/session"
	"github.com/Snyder005/govisa/pkg/sim"
)

func main() {
	var (
		configPath string
		resource   string
		tracePath  string
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&resource, "resource", "", "Resource string to open")
	flag.StringVar(&tracePath, "trace", "", "Trace capture file path")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "visaterm: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags override the config file.
	if resource != "" {
		cfg.Resource = resource
	}
	if tracePath != "" {
		cfg.TracePath = tracePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "visaterm: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "visaterm: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	logger, closer, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	opts := []sim.Option{
		sim.WithIdentity(cfg.Identity.Manufacturer, cfg.Identity.Model, cfg.Identity.Serial),
	}
	for command, response := range cfg.Responses {
		opts = append(opts, sim.WithResponse(command, response))
	}
	inst := sim.New(cfg.Resource, opts...)

	h, st := inst.Open(cfg.Resource)
	if err := driver.Check("viOpen", st); err != nil {
		return err
	}

	sess := session.New(inst, h, cfg.Resource, session.WithLogger(logger))
	defer sess.Close()

	if cfg.Timeout > 0 {
		if err := sess.SetTimeout(cfg.Timeout.Std()); err != nil {
			return err
		}
	}

	term, err := NewTerminal(sess, inst)
	if err != nil {
		return err
	}
	return term.Run()
}

// buildLogger assembles the session trace logger: console output via
// slog, plus optional file capture.
func buildLogger(cfg Config) (log.Logger, *log.FileLogger, error) {
	console := log.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	})))

	if cfg.TracePath == "" {
		return console, nil, nil
	}

	file, err := log.NewFileLogger(cfg.TracePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	return log.NewMultiLogger(console, file), file, nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
