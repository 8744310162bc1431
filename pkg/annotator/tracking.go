package annotator

import (
	"fmt"
	"image"

	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/gset"
	"github.com/progmat64/AirVision/pkg/trail"

	"gocv.io/x/gocv"
)

// Tracking draws fading trajectory trails for tracked
// objects and counts unique ids over the whole run.
type Tracking struct {
	det            Detector
	history        map[int]*trail.Track
	seen           *gset.Set[int]
	suppressed     uint64
	conf           float32
	hide_labels    bool
	draw_lines     bool
	history_len    int
	line_thickness int
	smooth         bool
	smooth_radius  int
}

func NewTracking(cfg *config.ConfigFile, det Detector) *Tracking {
	return &Tracking{
		det:            det,
		history:        make(map[int]*trail.Track),
		seen:           new(gset.Set[int]),
		conf:           cfg.Model.ConfidenceThreshold,
		hide_labels:    cfg.Annotator.HideLabels,
		draw_lines:     cfg.Tracking.DrawLines,
		history_len:    cfg.Tracking.HistoryLen,
		line_thickness: cfg.Tracking.LineThickness,
		smooth:         cfg.Tracking.Smooth,
		smooth_radius:  cfg.Tracking.SmoothRadius,
	}
}

func (a *Tracking) Prepare() error {
	a.det.SetConfidenceThreshold(a.conf)
	return nil
}

func (a *Tracking) Suppressed() uint64 {
	return a.suppressed
}

// TrackCount reports how many tracks are currently kept,
// including disappeared ones with a drawable trail.
func (a *Tracking) TrackCount() int {
	return len(a.history)
}

func (a *Tracking) Annotate(img *gocv.Mat) Stats {
	degraded := Stats{
		Current:     0,
		TotalUnique: a.seen.Size(),
		Coverage:    NotApplicable,
	}

	dets, err := a.det.Predict(img)
	if err != nil {
		a.suppressed++
		return degraded
	}
	// a tracker that returns boxes without ids is as good
	// as a failed one: no state change, no annotation
	for _, d := range dets {
		if d.TrackID < 0 {
			a.suppressed++
			return degraded
		}
	}

	active := make(map[int]struct{}, len(dets))
	for _, d := range dets {
		track, ok := a.history[d.TrackID]
		if !ok {
			track = trail.NewTrack(d.TrackID, a.history_len)
			a.history[d.TrackID] = track
		}
		track.Append(d.Center())
		a.seen.Add(d.TrackID)
		active[d.TrackID] = struct{}{}
	}

	// absent tracks that never produced a drawable segment
	// are dropped, the re-check runs every frame
	for id, track := range a.history {
		if _, ok := active[id]; !ok && track.Len() < 2 {
			delete(a.history, id)
		}
	}

	for _, d := range dets {
		col := trail.Color(d.TrackID)
		gocv.Rectangle(img, d.Box, col, a.line_thickness)
		if !a.hide_labels {
			gocv.PutText(img,
				fmt.Sprintf("id %d %.2f", d.TrackID, d.Confidence),
				d.Box.Min.Add(image.Pt(0, -5)),
				gocv.FontHersheyPlain, 1.2, col, 2)
		}
	}

	if a.draw_lines {
		for _, track := range a.history {
			if track.Len() >= 2 {
				track.Draw(img, a.line_thickness, a.smooth, a.smooth_radius)
			}
		}
	}

	return Stats{
		Current:     len(dets),
		TotalUnique: a.seen.Size(),
		Coverage:    NotApplicable,
	}
}
