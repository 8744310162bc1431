package annotator

import (
	"image"

	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/heatgrid"

	"gocv.io/x/gocv"
)

// Heatmap accumulates detection centers into a persistent
// density grid and blends a colorized rendition of it over
// every frame.
type Heatmap struct {
	det        Detector
	grid       *heatgrid.Grid
	suppressed uint64
	conf       float32
	alpha      float64
	radius     int
	blur       bool
	coverage   float64
}

func NewHeatmap(cfg *config.ConfigFile, det Detector) *Heatmap {
	return &Heatmap{
		det:    det,
		grid:   heatgrid.New(),
		conf:   cfg.Model.ConfidenceThreshold,
		alpha:  cfg.Heatmap.Alpha,
		radius: cfg.Heatmap.Radius,
		blur:   cfg.Heatmap.Blur,
	}
}

func (a *Heatmap) Prepare() error {
	a.det.SetConfidenceThreshold(a.conf)
	return nil
}

func (a *Heatmap) Suppressed() uint64 {
	return a.suppressed
}

// Coverage is the share of the frame ever touched by a
// detection, in percent. Readable between Annotate calls.
func (a *Heatmap) Coverage() float64 {
	return a.coverage
}

func (a *Heatmap) Annotate(img *gocv.Mat) Stats {
	// a resolution change resets the accumulated density
	a.grid.Ensure(img.Cols(), img.Rows())

	stats := Stats{
		Current:     NotApplicable,
		TotalUnique: NotApplicable,
		Coverage:    a.coverage,
	}

	dets, err := a.det.Predict(img)
	if err != nil {
		a.suppressed++
		return stats
	}

	for _, d := range dets {
		a.grid.Stamp(d.Center(), a.radius)
	}
	a.coverage = a.grid.Coverage()
	stats.Coverage = a.coverage

	heat, err := gocv.NewMatFromBytes(
		img.Rows(), img.Cols(), gocv.MatTypeCV8U, a.grid.Normalized())
	if err != nil {
		a.suppressed++
		return stats
	}
	defer heat.Close()

	if a.blur {
		gocv.GaussianBlur(
			heat, &heat, image.Pt(0, 0),
			float64(a.radius)/2, 0, gocv.BorderDefault)
	}

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(heat, &colored, gocv.ColormapJet)

	gocv.AddWeighted(colored, a.alpha, *img, 1-a.alpha, 0, img)

	return stats
}
