package heatgrid

import (
	"image"
	"testing"
)

func TestLazyAllocation(t *testing.T) {
	g := New()
	if !g.Empty() {
		t.Fatal("New grid should be empty")
	}
	if !g.Ensure(100, 50) {
		t.Fatal("First Ensure should allocate")
	}
	if g.Ensure(100, 50) {
		t.Fatal("Same dimensions should not reallocate")
	}
	w, h := g.Size()
	if w != 100 || h != 50 {
		t.Fatalf("Bad size: %dx%d", w, h)
	}
}

func TestReallocationResets(t *testing.T) {
	g := New()
	g.Ensure(100, 100)
	g.Stamp(image.Pt(50, 50), 3)
	if g.Coverage() == 0 {
		t.Fatal("Stamp had no effect")
	}
	if !g.Ensure(200, 100) {
		t.Fatal("Dimension change should reallocate")
	}
	if g.Coverage() != 0 {
		t.Fatalf("Reallocation kept old density: %f", g.Coverage())
	}
}

func TestStampSaturates(t *testing.T) {
	g := New()
	g.Ensure(100, 100)
	g.Stamp(image.Pt(30, 30), 3)
	first := g.Coverage()
	if first <= 0 || first > 100 {
		t.Fatalf("Coverage out of range: %f", first)
	}
	// same spot over several frames, coverage stays put
	for range 5 {
		g.Stamp(image.Pt(30, 30), 3)
		if g.Coverage() != first {
			t.Fatalf("Repeated stamp changed coverage: %f -> %f", first, g.Coverage())
		}
	}
	if g.At(30, 30) != 1.0 {
		t.Fatalf("Cell not saturated at 1.0: %f", g.At(30, 30))
	}
	// a disjoint point grows it
	g.Stamp(image.Pt(80, 80), 3)
	if g.Coverage() <= first {
		t.Fatalf("Disjoint stamp did not grow coverage: %f", g.Coverage())
	}
}

func TestStampOutOfBounds(t *testing.T) {
	g := New()
	g.Ensure(50, 50)
	g.Stamp(image.Pt(-1, 10), 3)
	g.Stamp(image.Pt(10, 50), 3)
	if g.Coverage() != 0 {
		t.Fatalf("Out of bounds center stamped: %f", g.Coverage())
	}
	// border disk is clipped, not dropped
	g.Stamp(image.Pt(0, 0), 3)
	if g.Coverage() == 0 {
		t.Fatal("Border stamp lost")
	}
}

func TestCoverageMonotonic(t *testing.T) {
	g := New()
	g.Ensure(120, 80)
	previous := 0.0
	for i := range 20 {
		g.Stamp(image.Pt(i*6, i*4), 2)
		c := g.Coverage()
		if c < previous {
			t.Fatalf("Coverage decreased: %f -> %f", previous, c)
		}
		if c < 0 || c > 100 {
			t.Fatalf("Coverage out of range: %f", c)
		}
		previous = c
	}
}

func TestNormalized(t *testing.T) {
	g := New()
	g.Ensure(10, 10)
	flat := g.Normalized()
	for _, v := range flat {
		if v != 0 {
			t.Fatal("Flat grid should normalize to zero")
		}
	}
	g.Stamp(image.Pt(5, 5), 1)
	norm := g.Normalized()
	if norm[5*10+5] != 255 {
		t.Fatalf("Touched cell should map to 255, got %d", norm[5*10+5])
	}
	if norm[0] != 0 {
		t.Fatalf("Untouched cell should map to 0, got %d", norm[0])
	}
}
