package main

import (
	// stdlib
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	// internal
	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/indexed"

	// external
	"github.com/hybridgroup/mjpeg"
)

func webplayer(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.ConfigFile,
	rc *runControl,
	in_chan <-chan indexed.Indexed[[]byte],
) error {

	logger = logger.With("coroutine", "webplayer")

	output_stream := mjpeg.NewStream()

	mux := http.NewServeMux()
	mux.Handle("/", output_stream)
	mux.HandleFunc("/control/pause", func(w http.ResponseWriter, r *http.Request) {
		rc.Pause()
		logger.Info("Paused")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/control/resume", func(w http.ResponseWriter, r *http.Request) {
		rc.Resume()
		logger.Info("Resumed")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/control/stop", func(w http.ResponseWriter, r *http.Request) {
		rc.Stop()
		logger.Info("Stop requested")
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Webserver.Port),
		ReadTimeout:  time.Duration(cfg.Webserver.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Webserver.WriteTimeoutSec) * time.Second,
		Handler:      mux,
	}

	err_chan := make(chan error, 1)

	go func() {
		logger.Info("Starting the server", "port", cfg.Webserver.Port)
		err_chan <- server.ListenAndServe()
	}()

	defer func() {
		shutdown_ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Webserver.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		server.Shutdown(shutdown_ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case err := <-err_chan:
			logger.Error("Server stopped", "error", err)
			return err
		case frame := <-in_chan:
			output_stream.UpdateJPEG(frame.Value())
		}
	}
}
