package main

import (
	// stdlib
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	// internal
	"github.com/progmat64/AirVision/pkg/config"

	// external
	"gocv.io/x/gocv"
)

// frameSource hides where frames come from. Read fills the Mat and
// reports whether a frame was produced; Total is the frame count for
// progress reporting, <= 0 when unknown (webcam, IP camera).
type frameSource interface {
	Read(img *gocv.Mat) bool
	Total() int
	Close() error
}

func openSource(logger *slog.Logger, cfg *config.ConfigFile) (frameSource, error) {
	switch config.InputType(cfg.Input.Type) {
	case config.InputTypeFile:
		stream, err := gocv.VideoCaptureFile(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		return newCaptureSource(stream, cfg, true), nil
	case config.InputTypeWebcam:
		stream, err := gocv.OpenVideoCapture(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		return newCaptureSource(stream, cfg, false), nil
	case config.InputTypeIPC:
		stream, err := gocv.OpenVideoCapture(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		return newCaptureSource(stream, cfg, false), nil
	case config.InputTypeFolder:
		return newFolderSource(logger, cfg)
	default:
		return nil, ERR_INVALID_CONFIG
	}
}

type captureSource struct {
	stream *gocv.VideoCapture
	skip   uint
	total  int
}

func newCaptureSource(
	stream *gocv.VideoCapture,
	cfg *config.ConfigFile,
	seekable bool,
) *captureSource {

	total := 0
	if seekable {
		total = int(stream.Get(gocv.VideoCaptureFrameCount))
		if cfg.Input.StartFrame > 0 {
			stream.Set(
				gocv.VideoCapturePosFrames,
				float64(cfg.Input.StartFrame))
			total -= int(cfg.Input.StartFrame)
		}
	}

	return &captureSource{
		stream: stream,
		skip:   cfg.Input.SkipFrames,
		total:  total,
	}
}

func (s *captureSource) Read(img *gocv.Mat) bool {
	if !s.stream.Read(img) {
		return false
	}
	if s.skip > 0 {
		s.stream.Grab(int(s.skip))
	}
	return true
}

func (s *captureSource) Total() int {
	if s.skip > 0 && s.total > 0 {
		return s.total / int(s.skip+1)
	}
	return s.total
}

func (s *captureSource) Close() error {
	return s.stream.Close()
}

type folderSource struct {
	logger *slog.Logger
	files  []string
	pos    int
	skip   uint
}

var image_exts = []string{".jpg", ".jpeg", ".png", ".bmp"}

func newFolderSource(logger *slog.Logger, cfg *config.ConfigFile) (*folderSource, error) {
	entries, err := os.ReadDir(cfg.Input.Path)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(image_exts, ext) {
			files = append(files, filepath.Join(cfg.Input.Path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, ERR_BAD_INPUT
	}
	slices.Sort(files)

	pos := int(cfg.Input.StartFrame)

	return &folderSource{
		logger: logger,
		files:  files,
		pos:    pos,
		skip:   cfg.Input.SkipFrames,
	}, nil
}

// Read skips over unreadable images, one bad file must not
// end the stream.
func (s *folderSource) Read(img *gocv.Mat) bool {
	for s.pos < len(s.files) {
		path := s.files[s.pos]
		s.pos += int(s.skip) + 1
		frame := gocv.IMRead(path, gocv.IMReadColor)
		if frame.Empty() {
			frame.Close()
			s.logger.Warn("Skipping an unreadable image", "path", path)
			continue
		}
		frame.CopyTo(img)
		frame.Close()
		return true
	}
	return false
}

func (s *folderSource) Total() int {
	if s.skip > 0 {
		return len(s.files) / int(s.skip+1)
	}
	return len(s.files)
}

func (s *folderSource) Close() error {
	return nil
}
