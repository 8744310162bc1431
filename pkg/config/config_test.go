package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndUnmarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateDefault(path); err != nil {
		t.Fatalf("Can't create default config: %s", err)
	}
	cfg, err := Unmarshal(path)
	if err != nil {
		t.Fatalf("Can't unmarshal, err: %s", err)
	}
	if cfg.Tracking.HistoryLen != 150 {
		t.Fatalf("Expected default history length 150, got %d", cfg.Tracking.HistoryLen)
	}
	if cfg.Annotator.Mode != AnnotatorModeTracking {
		t.Fatalf("Expected default mode tracking, got %s", cfg.Annotator.Mode)
	}
}

func TestPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	err := os.WriteFile(path, []byte("[heatmap]\nradius = 30\n"), 0644)
	if err != nil {
		t.Fatalf("Can't write partial config: %s", err)
	}
	cfg, err := Unmarshal(path)
	if err != nil {
		t.Fatalf("Can't unmarshal, err: %s", err)
	}
	if cfg.Heatmap.Radius != 30 {
		t.Fatalf("Overlay lost: radius %d", cfg.Heatmap.Radius)
	}
	if cfg.Heatmap.Alpha != 0.4 {
		t.Fatalf("Default lost: alpha %f", cfg.Heatmap.Alpha)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Unmarshal(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
