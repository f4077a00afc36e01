package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// IntersectsSegment reports whether the segment from a to b touches r,
// including its border. Empty rectangles never block.
func (r Rect) IntersectsSegment(a, b r2.Vec) bool {
	if r.Empty() {
		return false
	}
	if r.ContainsPoint(a) || r.ContainsPoint(b) {
		return true
	}

	// Liang-Barsky clipping of the parametric segment a + t*(b-a), t in [0,1].
	d := r2.Sub(b, a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - r.X},
		{d.X, r.X + r.W - a.X},
		{-d.Y, a.Y - r.Y},
		{d.Y, r.Y + r.H - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0 <= t1
}

// SegmentBlocked reports whether any rectangle crosses the segment from a to b.
func SegmentBlocked(a, b r2.Vec, rects []Rect) bool {
	for _, r := range rects {
		if r.IntersectsSegment(a, b) {
			return true
		}
	}
	return false
}

// Distance returns the euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Direction returns the per-axis sign (-1, 0 or +1) of the vector from
// "from" to "to".
func Direction(from, to r2.Vec) (sx, sy float64) {
	return sign(to.X - from.X), sign(to.Y - from.Y)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Finite reports whether both coordinates are finite numbers.
func Finite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
