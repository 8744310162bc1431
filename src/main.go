package main

import (
	// stdlib
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	// internal
	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/indexed"
	"github.com/progmat64/AirVision/pkg/rpath"
	"github.com/progmat64/AirVision/pkg/telemetry"

	// external
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const (
	default_cfg_path string = "../cfg/config.default.toml"
)

var cfg_path string
var exe_dir string

func init() {
	var err error

	exe_dir, err = rpath.ExecutableDir()
	if err != nil {
		slog.Error("Can't find the executable's location", "error", err)
		return
	}

	flag.StringVar(
		&cfg_path, "config",
		default_cfg_path,
		"Path to config file")
}

func main() {

	// Configuration init

	flag.Parse()

	cfg, err := config.Unmarshal(rpath.Convert(exe_dir, cfg_path))
	if err != nil {
		slog.Error("Config file not loaded. Shutting down...", "provided path", cfg_path, "error", err)
		return
	}

	var log_level slog.Level

	switch config.LoggingLevel(cfg.Logging.Level) {
	case config.LoggingLevelDebug:
		log_level = slog.LevelDebug
	case config.LoggingLevelInfo:
		log_level = slog.LevelInfo
	case config.LoggingLevelWarn:
		log_level = slog.LevelWarn
	case config.LoggingLevelError:
		log_level = slog.LevelError
	default:
		slog.Warn(
			"No valid logging level provided. Defaulting to LevelError",
			"provided value", cfg.Logging.Level)
		log_level = slog.LevelError
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      log_level,
		TimeFormat: time.RFC3339,
	}))

	logger.Info("Starting...", "mode", cfg.Annotator.Mode)

	ctx := context.Background()
	eg, child_ctx := errgroup.WithContext(ctx)

	rc := newRunControl()

	frames_chan := make(chan indexed.Indexed[[]byte], 4)
	stats_chan := make(chan telemetry.Event, 4)
	var mqtt_chan chan telemetry.Event
	if cfg.Mqtt.Enabled {
		mqtt_chan = make(chan telemetry.Event, 16)
	}

	eg.Go(func() error {
		return processor(
			child_ctx, logger, cfg, rc,
			frames_chan, stats_chan, mqtt_chan)
	})

	eg.Go(func() error {
		return webplayer(
			child_ctx, logger, cfg, rc, frames_chan)
	})

	eg.Go(func() error {
		return stat(
			child_ctx, logger, stats_chan,
			cfg.Logging.StatPeriodSec)
	})

	if cfg.Mqtt.Enabled {
		eg.Go(func() error {
			return mqttclient(child_ctx, logger, cfg, mqtt_chan)
		})
	}

	eg.Go(func() error {
		return control(child_ctx, logger, rc)
	})

	err = eg.Wait()
	switch {
	case err == nil,
		errors.Is(err, ERR_FINISHED),
		errors.Is(err, ERR_STOPPED_BY_USER),
		errors.Is(err, ERR_INTERRUPTED_BY_USER),
		errors.Is(err, context.Canceled):
		logger.Info("Stopped")
	default:
		logger.Error("Stopped with error", "error", err)
		os.Exit(1)
	}
}
