package annotator

import (
	"testing"

	"github.com/progmat64/AirVision/pkg/config"
)

func TestHeatmapCoverage(t *testing.T) {
	frames := make([]scriptedFrame, 6)
	for i := range 5 {
		frames[i] = scriptedFrame{dets: []Detection{detectedAt(50, 50)}}
	}
	frames[5] = scriptedFrame{dets: []Detection{detectedAt(90, 90)}}
	det := &scriptedDetector{script: frames}

	a := NewHeatmap(config.Default(), det)
	if err := a.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %s", err)
	}

	img := testFrame(120, 120)
	defer img.Close()

	a.Annotate(&img)
	first := a.Coverage()
	if first <= 0 || first > 100 {
		t.Fatalf("Coverage out of range: %f", first)
	}

	// the same point stamped again and again changes nothing
	for range 4 {
		stats := a.Annotate(&img)
		if a.Coverage() != first {
			t.Fatalf("Coverage moved on repeated stamps: %f -> %f", first, a.Coverage())
		}
		if stats.Current != NotApplicable || stats.TotalUnique != NotApplicable {
			t.Fatalf("Heatmap stats should carry sentinels: %+v", stats)
		}
	}

	// a disjoint point grows it
	a.Annotate(&img)
	if a.Coverage() <= first {
		t.Fatalf("Disjoint stamp did not grow coverage: %f", a.Coverage())
	}
}

func TestHeatmapReallocOnResize(t *testing.T) {
	det := &scriptedDetector{script: []scriptedFrame{
		{dets: []Detection{detectedAt(50, 50)}},
		{dets: nil},
	}}
	a := NewHeatmap(config.Default(), det)

	img := testFrame(120, 120)
	a.Annotate(&img)
	img.Close()
	if a.Coverage() == 0 {
		t.Fatal("Expected non-zero coverage after a stamp")
	}

	// a resolution change silently discards the density
	bigger := testFrame(240, 120)
	defer bigger.Close()
	a.Annotate(&bigger)
	if a.Coverage() != 0 {
		t.Fatalf("Resize should reset the grid, coverage %f", a.Coverage())
	}
}

func TestHeatmapDegradeKeepsCoverage(t *testing.T) {
	det := &scriptedDetector{script: []scriptedFrame{
		{dets: []Detection{detectedAt(30, 30)}},
		{err: errDetectorDown},
	}}
	a := NewHeatmap(config.Default(), det)
	img := testFrame(100, 100)
	defer img.Close()

	a.Annotate(&img)
	before := a.Coverage()
	stats := a.Annotate(&img)
	if a.Suppressed() != 1 {
		t.Fatalf("Expected 1 suppressed failure, got %d", a.Suppressed())
	}
	if stats.Coverage != before {
		t.Fatalf("Coverage changed on a degraded frame: %f -> %f", before, stats.Coverage)
	}
}
