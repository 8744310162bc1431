package main

import (
	// stdlib
	"context"
	"fmt"
	"log/slog"
	"time"

	// internal
	"github.com/progmat64/AirVision/pkg/telemetry"
)

// stat aggregates per-frame events and logs a summary line every
// period seconds so the log stays readable at video framerates.
func stat(
	ctx context.Context,
	logger *slog.Logger,
	in_chan <-chan telemetry.Event,
	period uint,
) error {

	logger = logger.With("coroutine", "stat")

	if period == 0 {
		period = 5
	}

	ticker := time.NewTicker(time.Duration(period) * time.Second)
	defer ticker.Stop()

	var last telemetry.Event
	var got_any bool
	var last_suppressed uint64

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event := <-in_chan:
			last = event
			got_any = true
		case <-ticker.C:
			if !got_any {
				continue
			}
			logger.Info("Stats",
				"frame", last.Frame,
				"progress", fmtSentinel(last.Progress, "%d%%"),
				"current", fmtSentinel(last.Current, "%d"),
				"total unique", fmtSentinel(last.TotalUnique, "%d"),
				"coverage", fmtCoverage(last.Coverage),
				"fps", fmt.Sprintf("%.1f", last.FPS))
			if last.Suppressed > last_suppressed {
				logger.Warn("Detector failures suppressed",
					"count", last.Suppressed-last_suppressed,
					"total", last.Suppressed)
				last_suppressed = last.Suppressed
			}
		}
	}
}

func fmtSentinel(v int, format string) string {
	if v == telemetry.NotApplicable {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

func fmtCoverage(v float64) string {
	if v == telemetry.NotApplicable {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}
