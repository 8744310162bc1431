package main

import (
	// stdlib
	"context"
	"log/slog"
	"time"

	// internal
	"github.com/progmat64/AirVision/pkg/annotator"
	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/gema"
	"github.com/progmat64/AirVision/pkg/indexed"
	"github.com/progmat64/AirVision/pkg/motrack"
	"github.com/progmat64/AirVision/pkg/telemetry"
	"github.com/progmat64/AirVision/pkg/yolo"

	// external
	"gocv.io/x/gocv"
)

// fps smoothing weight, new sample contributes 20%
const fps_ema_weight float64 = 0.2

func processor(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.ConfigFile,
	rc *runControl,
	frames_chan chan<- indexed.Indexed[[]byte],
	stats_chan chan<- telemetry.Event,
	mqtt_chan chan<- telemetry.Event,
) error {

	logger = logger.With("coroutine", "processor")

	source, err := openSource(logger, cfg)
	if err != nil {
		logger.Error("Can't open the input", "type", cfg.Input.Type, "path", cfg.Input.Path, "error", err)
		return ERR_BAD_INPUT
	}
	defer source.Close()

	model, err := yolo.NewModel(cfg)
	if err != nil {
		logger.Error("Can't load the model", "path", cfg.Model.Path, "error", err)
		return ERR_BAD_MODEL
	}
	defer model.Close()

	var det annotator.Detector = model
	if config.AnnotatorMode(cfg.Annotator.Mode) == config.AnnotatorModeTracking {
		mot := motrack.NewTracker(cfg, model)
		defer mot.Close()
		det = mot
	}

	ann, err := annotator.New(cfg, det)
	if err != nil {
		logger.Error("Can't create the annotator", "mode", cfg.Annotator.Mode, "error", err)
		return ERR_INVALID_CONFIG
	}
	if err := ann.Prepare(); err != nil {
		logger.Error("Annotator setup failed", "error", err)
		return ERR_INVALID_CONFIG
	}

	img := gocv.NewMat()
	defer img.Close()

	// The writer is opened on the first frame since the output
	// dimensions are not known until then.
	var writer *gocv.VideoWriter
	defer func() {
		if writer != nil {
			writer.Close()
			logger.Info("Video saved", "path", cfg.Output.Path)
		}
	}()

	fps, err := gema.NewEMA[float64](fps_ema_weight)
	if err != nil {
		return err
	}

	total := source.Total()
	framerate := cfg.Output.Framerate

	var frame_id uint64
	last_frame := time.Now()

	logger.Info("Processing started", "total frames", total)

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if rc.Wait() {
			logger.Info("Stopped by user")
			return ERR_STOPPED_BY_USER
		}

		if !source.Read(&img) {
			logger.Info("Processing finished")
			return ERR_FINISHED
		}
		if img.Empty() {
			logger.Warn("Skipping an empty frame", "frame", frame_id)
			continue
		}

		s := ann.Annotate(&img)

		if cfg.Output.Path != "" {
			if writer == nil {
				writer, err = gocv.VideoWriterFile(
					cfg.Output.Path, "mp4v",
					float64(framerate),
					img.Cols(), img.Rows(), true)
				if err != nil {
					logger.Error("Can't open the output file", "path", cfg.Output.Path, "error", err)
					return ERR_BAD_OUTPUT
				}
			}
			writer.Write(img)
		}

		now := time.Now()
		dt := now.Sub(last_frame).Seconds()
		if dt > 0 {
			fps.Recalc(1 / dt)
		}
		last_frame = now

		frame_id += 1

		progress := telemetry.NotApplicable
		if total > 0 {
			progress = int(frame_id) * 100 / total
			if progress > 100 {
				progress = 100
			}
		}

		event := telemetry.Event{
			Frame:       frame_id,
			Progress:    progress,
			Current:     s.Current,
			TotalUnique: s.TotalUnique,
			Coverage:    s.Coverage,
			FPS:         fps.Show(),
			Suppressed:  ann.Suppressed(),
		}

		select {
		case stats_chan <- event:
		default:
		}
		if mqtt_chan != nil {
			select {
			case mqtt_chan <- event:
			default:
			}
		}

		buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
		if err != nil {
			logger.Warn("Can't encode the frame", "frame", frame_id, "error", err)
		} else {
			data := make([]byte, buf.Len())
			copy(data, buf.GetBytes())
			buf.Close()
			select {
			case frames_chan <- indexed.NewIndexed(frame_id, now, data):
			default:
				logger.Debug("Dropped a preview frame", "frame", frame_id)
			}
		}

		if framerate > 0 {
			time.Sleep(time.Second / time.Duration(framerate))
		}
	}
}
