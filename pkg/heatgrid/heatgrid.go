package heatgrid

import (
	"image"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense per-pixel accumulator of visit intensity.
// Stamping is a saturating set: a cell is either untouched
// or 1.0, repeated hits never grow it. Cell values only
// ever increase over the grid's lifetime.
type Grid struct {
	w, h  int
	cells []float64
}

func New() *Grid {
	return &Grid{}
}

// Ensure sizes the grid for the given frame. A dimension
// change discards everything accumulated so far. Reports
// whether a (re)allocation happened.
func (g *Grid) Ensure(w, h int) bool {
	if g.cells != nil && g.w == w && g.h == h {
		return false
	}
	g.w, g.h = w, h
	g.cells = make([]float64, w*h)
	return true
}

func (g *Grid) Empty() bool {
	return g.cells == nil
}

func (g *Grid) Size() (int, int) {
	return g.w, g.h
}

func (g *Grid) At(x, y int) float64 {
	return g.cells[y*g.w+x]
}

// Stamp marks a filled disk around center. Centers outside
// the grid are ignored, disks crossing the border are
// clipped.
func (g *Grid) Stamp(center image.Point, radius int) {
	if g.cells == nil {
		return
	}
	if center.X < 0 || center.X >= g.w || center.Y < 0 || center.Y >= g.h {
		return
	}
	for y := max(0, center.Y-radius); y <= min(g.h-1, center.Y+radius); y++ {
		dy := y - center.Y
		for x := max(0, center.X-radius); x <= min(g.w-1, center.X+radius); x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= radius*radius {
				g.cells[y*g.w+x] = 1.0
			}
		}
	}
}

// Coverage is the share of touched cells, in percent.
// Computed from the raw grid, so it never decreases while
// the dimensions stay put.
func (g *Grid) Coverage() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	touched := 0
	for _, v := range g.cells {
		if v > 0 {
			touched++
		}
	}
	return float64(touched) / float64(len(g.cells)) * 100
}

// Normalized maps the raw grid onto the 8-bit range with a
// min-max stretch. A flat grid maps to all zeros.
func (g *Grid) Normalized() []uint8 {
	out := make([]uint8, len(g.cells))
	if len(g.cells) == 0 {
		return out
	}
	lo, hi := floats.Min(g.cells), floats.Max(g.cells)
	if hi <= lo {
		return out
	}
	scale := 255 / (hi - lo)
	for i, v := range g.cells {
		out[i] = uint8((v - lo) * scale)
	}
	return out
}
