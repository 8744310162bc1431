package kalman

import (
	"image"
	"testing"
	"time"
)

func TestFollowsMeasurements(t *testing.T) {
	start := time.Now()
	f := NewFilter(image.Pt(100, 100), start, 0.01, 0.1)
	defer f.Close()

	// constant velocity to the right
	for i := 1; i <= 30; i++ {
		f.Update(image.Pt(100+i*5, 100), start.Add(time.Duration(i)*100*time.Millisecond))
	}
	state := f.State()
	t.Logf("State after updates: %v", state)
	if state.X < 200 || state.X > 280 {
		t.Fatalf("Filter lagging badly: %v", state)
	}
	if state.Y < 80 || state.Y > 120 {
		t.Fatalf("Y drifted: %v", state)
	}
}

func TestPredictExtrapolates(t *testing.T) {
	start := time.Now()
	f := NewFilter(image.Pt(0, 0), start, 0.01, 0.1)
	defer f.Close()

	for i := 1; i <= 20; i++ {
		f.Update(image.Pt(i*10, 0), start.Add(time.Duration(i)*100*time.Millisecond))
	}
	before := f.State()
	f.Predict(start.Add(2100 * time.Millisecond))
	after := f.State()
	t.Logf("Before: %v, after predict: %v", before, after)
	if after.X <= before.X {
		t.Fatalf("Prediction should continue the motion: %v -> %v", before, after)
	}
}
