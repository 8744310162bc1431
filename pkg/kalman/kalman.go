package kalman

import (
	"image"
	"time"

	"gocv.io/x/gocv"
)

// Filter is a constant-velocity kalman filter over a 2d
// position, backed by the gocv implementation. State layout
// is [x y vx vy].
type Filter struct {
	filter      *gocv.KalmanFilter
	last_update time.Time
}

func NewFilter(p image.Point, t time.Time, proc_noise_cov, meas_noise_cov float64) *Filter {
	filter := gocv.NewKalmanFilter(4, 2)
	gocv.SetIdentity(filter.GetTransitionMatrix(), 1)
	gocv.SetIdentity(filter.GetMeasurementMatrix(), 1)
	gocv.SetIdentity(filter.GetProcessNoiseCov(), proc_noise_cov)
	gocv.SetIdentity(filter.GetMeasurementNoiseCov(), meas_noise_cov)
	gocv.SetIdentity(filter.GetErrorCovPost(), 1)
	mat := filter.GetStatePre()
	mat.SetFloatAt(0, 0, float32(p.X))
	mat.SetFloatAt(0, 1, float32(p.Y))
	filter.SetStatePre(mat)
	mat = filter.GetStatePost()
	mat.SetFloatAt(0, 0, float32(p.X))
	mat.SetFloatAt(0, 1, float32(p.Y))
	filter.SetStatePost(mat)
	return &Filter{
		filter: &filter, last_update: t}
}

func (kf *Filter) predict(dt float32) {
	tr_mat := kf.filter.GetTransitionMatrix()
	defer tr_mat.Close()
	tr_mat.SetFloatAt(0, 2, dt)
	tr_mat.SetFloatAt(1, 3, dt)
	pred := kf.filter.Predict()
	defer pred.Close()
}

// Predict advances the filter to t without a measurement.
func (kf *Filter) Predict(t time.Time) {
	dt := float32(t.Sub(kf.last_update).Seconds())
	kf.predict(dt)
	kf.last_update = t
}

// Update advances the filter to t and corrects it with the
// measured position.
func (kf *Filter) Update(meas image.Point, t time.Time) {
	dt := float32(t.Sub(kf.last_update).Seconds())
	kf.predict(dt)

	meas_mat := gocv.NewMatWithSize(2, 1, gocv.MatTypeCV32F)
	defer meas_mat.Close()
	meas_mat.SetFloatAt(0, 0, float32(meas.X))
	meas_mat.SetFloatAt(1, 0, float32(meas.Y))
	corr := kf.filter.Correct(meas_mat)
	defer corr.Close()

	kf.last_update = t
}

func (kf *Filter) State() image.Point {
	state := kf.filter.GetStatePost()
	defer state.Close()

	return image.Pt(
		int(state.GetFloatAt(0, 0)),
		int(state.GetFloatAt(0, 1)),
	)
}

func (kf *Filter) Close() {
	kf.filter.Close()
}
