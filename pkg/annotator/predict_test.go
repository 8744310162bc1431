package annotator

import (
	"testing"

	"github.com/progmat64/AirVision/pkg/config"
)

func TestPredictCount(t *testing.T) {
	det := &scriptedDetector{script: []scriptedFrame{
		{dets: []Detection{detectedAt(10, 10), detectedAt(40, 40), detectedAt(70, 70)}},
		{dets: nil},
	}}
	a, err := NewPredict(config.Default(), det)
	if err != nil {
		t.Fatalf("Can't create predict annotator: %s", err)
	}
	if err := a.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %s", err)
	}

	img := testFrame(100, 100)
	defer img.Close()

	stats := a.Annotate(&img)
	if stats.Current != 3 {
		t.Fatalf("Expected 3 detections, got %d", stats.Current)
	}
	if stats.TotalUnique != NotApplicable || stats.Coverage != NotApplicable {
		t.Fatalf("Predict stats should carry sentinels: %+v", stats)
	}

	stats = a.Annotate(&img)
	if stats.Current != 0 {
		t.Fatalf("Expected 0 detections, got %d", stats.Current)
	}
}

func TestPredictDegrade(t *testing.T) {
	det := &scriptedDetector{script: []scriptedFrame{
		{err: errDetectorDown},
	}}
	a, err := NewPredict(config.Default(), det)
	if err != nil {
		t.Fatalf("Can't create predict annotator: %s", err)
	}
	img := testFrame(100, 100)
	defer img.Close()

	stats := a.Annotate(&img)
	if stats.Current != 0 || a.Suppressed() != 1 {
		t.Fatalf("Expected degraded frame: current %d, suppressed %d",
			stats.Current, a.Suppressed())
	}
}

func TestModeDispatch(t *testing.T) {
	det := &scriptedDetector{}
	for _, mode := range []string{
		config.AnnotatorModeTracking,
		config.AnnotatorModePredict,
		config.AnnotatorModeHeatmap,
	} {
		cfg := config.Default()
		cfg.Annotator.Mode = mode
		if _, err := New(cfg, det); err != nil {
			t.Fatalf("Mode %s failed: %s", mode, err)
		}
	}
	cfg := config.Default()
	cfg.Annotator.Mode = "segmentation"
	if _, err := New(cfg, det); err == nil {
		t.Fatal("Unknown mode should be rejected")
	}
}
