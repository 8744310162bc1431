package motrack

import (
	"math"
	"slices"
	"time"

	"github.com/progmat64/AirVision/pkg/annotator"
	"github.com/progmat64/AirVision/pkg/config"
	"github.com/progmat64/AirVision/pkg/functions"
	"github.com/progmat64/AirVision/pkg/gmat"
	"github.com/progmat64/AirVision/pkg/kalman"

	hung "github.com/arthurkushman/go-hungarian"
	"gocv.io/x/gocv"
)

type track struct {
	filter *kalman.Filter
	misses int
}

// Tracker wraps a plain detector and stamps stable integer
// ids onto its detections. Assignment runs the hungarian
// solver over gaussian-scored distances between detections
// and per-track constant-velocity predictions.
type Tracker struct {
	det            annotator.Detector
	tracks         map[int]*track
	next_id        int
	sigma          float64
	min_score      float64
	max_misses     int
	proc_noise_cov float64
	meas_noise_cov float64
}

func NewTracker(cfg *config.ConfigFile, det annotator.Detector) *Tracker {
	return &Tracker{
		det:            det,
		tracks:         make(map[int]*track),
		next_id:        1,
		sigma:          cfg.Tracking.SigmaPx,
		min_score:      cfg.Tracking.MinScore,
		max_misses:     cfg.Tracking.MaxMisses,
		proc_noise_cov: cfg.Tracking.ProcessNoiseCov,
		meas_noise_cov: cfg.Tracking.MeasNoiseCov,
	}
}

func (t *Tracker) SetConfidenceThreshold(threshold float32) {
	t.det.SetConfidenceThreshold(threshold)
}

func (t *Tracker) Predict(img *gocv.Mat) ([]annotator.Detection, error) {
	dets, err := t.det.Predict(img)
	if err != nil {
		return nil, err
	}
	t.associate(dets, time.Now())
	return dets, nil
}

func (t *Tracker) associate(dets []annotator.Detection, now time.Time) {
	ids := make([]int, 0, len(t.tracks))
	for id := range t.tracks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	assigned_dets := make(map[int]struct{}, len(dets))
	updated_tracks := make(map[int]struct{}, len(ids))

	if len(ids) > 0 && len(dets) > 0 {
		// padded to square so the solver always gets a
		// complete assignment, the padding scores zero
		n := max(len(ids), len(dets))
		scores := gmat.NewMat[float64](n, n)
		for r, id := range ids {
			state := t.tracks[id].filter.State()
			for c, d := range dets {
				center := d.Center()
				dist := math.Hypot(
					float64(state.X-center.X),
					float64(state.Y-center.Y))
				scores.Set(r, c, functions.Gaussian(1.0, dist, t.sigma))
			}
		}
		ass := hung.SolveMax(scores.To2d())
		for r, id := range ids {
			for c, score := range ass[r] {
				if c < len(dets) && score >= t.min_score {
					t.tracks[id].filter.Update(dets[c].Center(), now)
					t.tracks[id].misses = 0
					dets[c].TrackID = id
					assigned_dets[c] = struct{}{}
					updated_tracks[id] = struct{}{}
				}
				break
			}
		}
	}

	// coast unmatched tracks, expire the long-lost ones
	for id, tr := range t.tracks {
		if _, ok := updated_tracks[id]; ok {
			continue
		}
		tr.misses++
		if tr.misses > t.max_misses {
			tr.filter.Close()
			delete(t.tracks, id)
			continue
		}
		tr.filter.Predict(now)
	}

	// unmatched detections open new tracks
	for c := range dets {
		if _, ok := assigned_dets[c]; ok {
			continue
		}
		id := t.next_id
		t.next_id++
		t.tracks[id] = &track{
			filter: kalman.NewFilter(
				dets[c].Center(), now,
				t.proc_noise_cov, t.meas_noise_cov),
		}
		dets[c].TrackID = id
	}
}

// ActiveTracks reports how many tracks are currently alive,
// matched or coasting.
func (t *Tracker) ActiveTracks() int {
	return len(t.tracks)
}

func (t *Tracker) Close() {
	for id, tr := range t.tracks {
		tr.filter.Close()
		delete(t.tracks, id)
	}
}
