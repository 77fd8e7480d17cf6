// Command fram-shell is an interactive console for FM24CL16B-style FRAM
// devices.
//
// It drives either a simulated chip or a real device behind the Linux
// i2c-dev interface, using the same driver in both cases.
//
// Usage:
//
//	fram-shell [flags]
//
// Flags:
//
//	-profile string     Device profile preset (default "fm24cl16b")
//	-config string      Device profile YAML file (overrides -profile)
//	-bus string         "sim" or an i2c-dev path such as /dev/i2c-1 (default "sim")
//	-image string       Simulator backing file, loaded at start and saved on exit
//	-busy-polls int     Simulated completion polls after an async write
//	-trace string       Write a bus trace to this file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-exec string        Run semicolon-separated commands and exit
//
// Examples:
//
//	# Explore a simulated FM24CL16B
//	fram-shell
//
//	# Persist the simulated contents between runs
//	fram-shell -image fram.bin
//
//	# Run a self test on real hardware and trace the bus
//	fram-shell -bus /dev/i2c-1 -trace bus.ftrace -exec "selftest 32"
//
//	# Smaller part from a profile preset
//	fram-shell -profile fm24cl04b -exec "info; dump"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mash-protocol/fram-go/cmd/fram-shell/interactive"
	"github.com/mash-protocol/fram-go/pkg/bus"
	"github.com/mash-protocol/fram-go/pkg/bus/i2cdev"
	"github.com/mash-protocol/fram-go/pkg/bus/sim"
	"github.com/mash-protocol/fram-go/pkg/fram"
	"github.com/mash-protocol/fram-go/pkg/log"
	"github.com/mash-protocol/fram-go/pkg/profile"
)

// Config holds the shell configuration.
type Config struct {
	Profile    string
	ConfigFile string
	Bus        string
	Image      string
	BusyPolls  int
	TraceFile  string
	LogLevel   string
	Exec       string
}

var config Config

func init() {
	flag.StringVar(&config.Profile, "profile", profile.Default, "Device profile preset")
	flag.StringVar(&config.ConfigFile, "config", "", "Device profile YAML file (overrides -profile)")
	flag.StringVar(&config.Bus, "bus", "sim", `"sim" or an i2c-dev path such as /dev/i2c-1`)
	flag.StringVar(&config.Image, "image", "", "Simulator backing file, loaded at start and saved on exit")
	flag.IntVar(&config.BusyPolls, "busy-polls", 0, "Simulated completion polls after an async write")
	flag.StringVar(&config.TraceFile, "trace", "", "Write a bus trace to this file")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.Exec, "exec", "", "Run semicolon-separated commands and exit")
}

func main() {
	flag.Parse()

	logger := setupLogging(config.LogLevel)

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) (err error) {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	cfg, err := p.Config()
	if err != nil {
		return err
	}

	opts := []fram.Option{fram.WithLogger(logger)}

	if config.TraceFile != "" {
		fileLogger, ferr := log.NewFileLogger(config.TraceFile)
		if ferr != nil {
			return fmt.Errorf("failed to open trace file: %w", ferr)
		}
		defer keepFirst(&err, "failed to flush trace file", fileLogger.Close)

		var tracer log.Logger = fileLogger
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			tracer = log.NewMultiLogger(fileLogger, log.NewSlogAdapter(logger))
		}
		opts = append(opts, fram.WithTracer(tracer))
	}

	transport, chip, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer keepFirst(&err, "failed to close bus", func() error { return closeBus(transport, chip) })

	dev, err := fram.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := dev.Init(transport); err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}
	defer keepFirst(&err, "failed to release device", dev.Deinit)

	logger.Info("device ready", "device", cfg.Name, "bus", config.Bus, "capacity", cfg.Capacity(), "handle_id", dev.ID())

	shell := interactive.New(dev, chip, os.Stdout)

	if config.Exec != "" {
		for _, line := range strings.Split(config.Exec, ";") {
			if !shell.Exec(line) {
				break
			}
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return shell.Run(ctx)
}

func loadProfile() (*profile.Profile, error) {
	if config.ConfigFile != "" {
		return profile.LoadFile(config.ConfigFile)
	}
	return profile.Load(config.Profile)
}

// openBus returns the transport named by -bus. chip is non-nil for the
// simulator.
func openBus(cfg fram.Config) (bus.Transport, *sim.Chip, error) {
	if config.Bus != "sim" {
		b, err := i2cdev.Open(config.Bus)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}

	chip, err := sim.New(sim.Geometry{
		Address:  cfg.WriteAddress,
		Pages:    cfg.Pages,
		PageSize: cfg.PageSize,
		PageWrap: cfg.PageWrap,
	}, sim.WithBusyPolls(config.BusyPolls))
	if err != nil {
		return nil, nil, err
	}

	if config.Image != "" {
		err := chip.LoadFile(config.Image)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("image not found, starting erased", "path", config.Image)
		case err != nil:
			return nil, nil, err
		}
	}
	return chip, chip, nil
}

func closeBus(t bus.Transport, chip *sim.Chip) error {
	if chip != nil && config.Image != "" && chip.Modified() {
		if err := chip.SaveFile(config.Image); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
	}
	if c, ok := t.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// keepFirst runs fn and stores its error in errp unless errp already holds
// one. It is meant to be deferred.
func keepFirst(errp *error, msg string, fn func() error) {
	if cerr := fn(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("%s: %w", msg, cerr)
	}
}

func setupLogging(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	return logger
}
