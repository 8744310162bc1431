package annotator

import (
	"fmt"
	"image"
	"image/color"

	"github.com/progmat64/AirVision/pkg/config"

	"github.com/muesli/gamut"
	"gocv.io/x/gocv"
)

// Predict is the stateless pass-through mode: boxes in,
// boxes drawn, nothing remembered between frames.
type Predict struct {
	det            Detector
	suppressed     uint64
	conf           float32
	hide_labels    bool
	line_thickness int
	palette        []color.RGBA
}

func NewPredict(cfg *config.ConfigFile, det Detector) (*Predict, error) {
	generated, err := gamut.Generate(16, gamut.PastelGenerator{})
	if err != nil {
		return nil, fmt.Errorf("Can't generate class palette: %w", err)
	}
	palette := make([]color.RGBA, 0, len(generated))
	for _, c := range generated {
		r, g, b, _ := c.RGBA()
		palette = append(palette, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255})
	}
	return &Predict{
		det:            det,
		conf:           cfg.Model.ConfidenceThreshold,
		hide_labels:    cfg.Annotator.HideLabels,
		line_thickness: cfg.Tracking.LineThickness,
		palette:        palette,
	}, nil
}

func (a *Predict) Prepare() error {
	a.det.SetConfidenceThreshold(a.conf)
	return nil
}

func (a *Predict) Suppressed() uint64 {
	return a.suppressed
}

func (a *Predict) Annotate(img *gocv.Mat) Stats {
	dets, err := a.det.Predict(img)
	if err != nil {
		a.suppressed++
		return Stats{
			Current:     0,
			TotalUnique: NotApplicable,
			Coverage:    NotApplicable,
		}
	}

	for _, d := range dets {
		col := a.palette[d.ClassID%len(a.palette)]
		gocv.Rectangle(img, d.Box, col, a.line_thickness)
		if !a.hide_labels {
			gocv.PutText(img,
				fmt.Sprintf("%d %.2f", d.ClassID, d.Confidence),
				d.Box.Min.Add(image.Pt(0, -5)),
				gocv.FontHersheyPlain, 1.2, col, 2)
		}
	}

	return Stats{
		Current:     len(dets),
		TotalUnique: NotApplicable,
		Coverage:    NotApplicable,
	}
}
