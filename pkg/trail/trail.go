package trail

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/progmat64/AirVision/pkg/gring"

	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// Arrowheads are suppressed below this last-segment length
// to avoid jitter on near-stationary objects.
const min_arrow_dist = 5.0

// Color derives a stable color from a track id: a seeded
// PRNG picks the hue, saturation and value are fixed. Same
// id always yields the same triple, in any process.
func Color(id int) color.RGBA {
	rng := rand.New(rand.NewPCG(uint64(id), 0))
	hue := rng.Float64() * 360
	r, g, b := colorful.Hsv(hue, 0.9, 0.95).RGB255()
	return color.RGBA{r, g, b, 255}
}

// Smooth is a moving average over the whole path: every
// output point is the mean of up to 2*radius+1 neighbours,
// the window clamped at both ends. Paths shorter than 3
// points come back unchanged.
func Smooth(points []image.Point, radius int) []image.Point {
	if len(points) < 3 {
		return points
	}
	smoothed := make([]image.Point, 0, len(points))
	for i := range points {
		lo := max(0, i-radius)
		hi := min(len(points), i+radius+1)
		var sum_x, sum_y int
		for _, p := range points[lo:hi] {
			sum_x += p.X
			sum_y += p.Y
		}
		// rounded, truncation would drag the trail up-left
		n := hi - lo
		smoothed = append(smoothed, image.Pt(
			(sum_x+n/2)/n, (sum_y+n/2)/n))
	}
	return smoothed
}

// Track is the bounded position history of a single id.
// Owned by one annotator, not safe for concurrent use.
type Track struct {
	id     int
	points *gring.Ring[image.Point]
}

func NewTrack(id int, history_len int) *Track {
	return &Track{
		id:     id,
		points: gring.NewRing[image.Point](history_len),
	}
}

func (t *Track) Id() int { return t.id }

func (t *Track) Len() int { return t.points.Len() }

func (t *Track) Append(p image.Point) {
	t.points.Push(p)
}

func (t *Track) Newest() image.Point {
	return t.points.Newest()
}

// Path copies the history oldest to newest, optionally
// smoothed. The smoothing never mutates the stored points.
func (t *Track) Path(smooth bool, smooth_radius int) []image.Point {
	path := t.points.Slice()
	if smooth {
		path = Smooth(path, smooth_radius)
	}
	return path
}

// Draw renders the fading trail: segment brightness scales
// from faint at the oldest point to full at the newest. An
// arrowhead marks the heading when the object is moving.
func (t *Track) Draw(m *gocv.Mat, thickness int, smooth bool, smooth_radius int) {
	path := t.Path(smooth, smooth_radius)
	if len(path) < 2 {
		return
	}
	base := Color(t.id)
	n := len(path) - 1
	for i := range n {
		scale := float64(i+1) / float64(n)
		faded := color.RGBA{
			uint8(float64(base.R) * scale),
			uint8(float64(base.G) * scale),
			uint8(float64(base.B) * scale),
			255,
		}
		gocv.Line(m, path[i], path[i+1], faded, thickness)
	}
	last, prev := path[n], path[n-1]
	if math.Hypot(float64(last.X-prev.X), float64(last.Y-prev.Y)) > min_arrow_dist {
		gocv.ArrowedLine(m, prev, last, base, thickness+1)
	}
}
