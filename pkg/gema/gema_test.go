package gema

import (
	"math"
	"testing"
)

func TestStableRate(t *testing.T) {
	ema, err := NewEMA[float64](0.2)
	if err != nil {
		t.Fatalf("Can't create EMA: %s", err)
	}
	// warm up to exactly 10.0
	for range 200 {
		ema.Recalc(10.0)
	}
	if math.Abs(ema.Show()-10.0) > 1e-6 {
		t.Fatalf("Expected 10.0 after warmup, got %f", ema.Show())
	}
	// constant input keeps the average put
	ema.Recalc(1.0 / 0.1)
	if math.Abs(ema.Show()-10.0) > 1e-6 {
		t.Fatalf("Expected 0.8*10+0.2*10 = 10.0, got %f", ema.Show())
	}
}

func TestColdStart(t *testing.T) {
	ema, err := NewEMA[float64](0.2)
	if err != nil {
		t.Fatalf("Can't create EMA: %s", err)
	}
	if ema.Show() != 0 {
		t.Fatalf("Expected zero seed, got %f", ema.Show())
	}
	ema.Recalc(1.0) // dt = 1.0 sec -> sample 1.0
	if math.Abs(ema.Show()-0.2) > 1e-9 {
		t.Fatalf("Expected 0.2, got %f", ema.Show())
	}
}

func TestBadWeight(t *testing.T) {
	if _, err := NewEMA[float64](0); err == nil {
		t.Fatal("Expected error for zero weight")
	}
	if _, err := NewEMA[float64](1.5); err == nil {
		t.Fatal("Expected error for weight > 1")
	}
}
