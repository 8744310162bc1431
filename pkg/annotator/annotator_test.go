package annotator

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

var errDetectorDown = errors.New("detector down")

type scriptedFrame struct {
	dets []Detection
	err  error
}

// scriptedDetector replays a fixed per-frame script, which
// is all the annotators ever see of the real capability.
type scriptedDetector struct {
	script []scriptedFrame
	calls  int
	conf   float32
}

func (d *scriptedDetector) SetConfidenceThreshold(threshold float32) {
	d.conf = threshold
}

func (d *scriptedDetector) Predict(img *gocv.Mat) ([]Detection, error) {
	if d.calls >= len(d.script) {
		return nil, nil
	}
	frame := d.script[d.calls]
	d.calls++
	return frame.dets, frame.err
}

func trackedAt(id, cx, cy int) Detection {
	return Detection{
		Box:        image.Rect(cx-10, cy-10, cx+10, cy+10),
		Confidence: 0.9,
		ClassID:    0,
		TrackID:    id,
	}
}

func detectedAt(cx, cy int) Detection {
	d := trackedAt(-1, cx, cy)
	d.TrackID = -1
	return d
}

func testFrame(w, h int) gocv.Mat {
	return gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
}
