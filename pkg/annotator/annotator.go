package annotator

import (
	"errors"
	"fmt"
	"image"

	"github.com/progmat64/AirVision/pkg/config"

	"gocv.io/x/gocv"
)

var (
	ERR_UNKNOWN_MODE = errors.New("Unknown annotator mode")
)

// NotApplicable marks stats fields that have no meaning in
// the current mode.
const NotApplicable = -1

// Detection is one box reported by the detector capability.
// TrackID is only meaningful in tracking mode, -1 otherwise.
type Detection struct {
	Box        image.Rectangle
	Confidence float32
	ClassID    int
	TrackID    int
}

func (d Detection) Center() image.Point {
	return image.Pt(
		(d.Box.Min.X+d.Box.Max.X)/2,
		(d.Box.Min.Y+d.Box.Max.Y)/2,
	)
}

// Detector is the external capability that produces
// detections for a frame. Implementations decide whether
// TrackID is populated.
type Detector interface {
	SetConfidenceThreshold(threshold float32)
	Predict(img *gocv.Mat) ([]Detection, error)
}

// Stats is the per-frame result of an annotator. Fields set
// to NotApplicable do not apply to the active mode.
type Stats struct {
	Current     int
	TotalUnique int
	Coverage    float64
}

// Annotator turns decoded frames into annotated frames, one
// call per frame, mutating the frame in place. A detector
// failure never escapes Annotate: the frame is passed
// through untouched and the failure is counted instead.
// Instances keep per-run state and must not be shared
// between concurrent loops.
type Annotator interface {
	// Prepare runs one-time setup. Idempotent, must be
	// called before the first Annotate.
	Prepare() error
	Annotate(img *gocv.Mat) Stats
	// Suppressed reports how many per-frame detector
	// failures were swallowed so far.
	Suppressed() uint64
}

// New selects one of the three modes once, at construction.
func New(cfg *config.ConfigFile, det Detector) (Annotator, error) {
	switch config.AnnotatorMode(cfg.Annotator.Mode) {
	case config.AnnotatorModeTracking:
		return NewTracking(cfg, det), nil
	case config.AnnotatorModePredict:
		return NewPredict(cfg, det)
	case config.AnnotatorModeHeatmap:
		return NewHeatmap(cfg, det), nil
	default:
		return nil, fmt.Errorf("%w: %s", ERR_UNKNOWN_MODE, cfg.Annotator.Mode)
	}
}
