package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 2, Y: 2, W: 3, H: 3}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching corner", Rect{X: 10, Y: 10, W: 5, H: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
		{"empty", Rect{X: 5, Y: 5, W: 0, H: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("reverse Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(r2.Vec{X: 10, Y: 20}, r2.Vec{X: 4, Y: 5})
	want := Rect{X: 4, Y: 5, W: 6, H: 15}
	if r != want {
		t.Errorf("RectFromCorners = %v, want %v", r, want)
	}
}

func TestEllipseRectIntersection(t *testing.T) {
	obstacle := Rect{X: 100, Y: 100, W: 50, H: 20}

	tests := []struct {
		name    string
		ellipse Ellipse
		want    bool
	}{
		{"center inside", Ellipse{Center: r2.Vec{X: 120, Y: 110}, SemiMajor: 5, SemiMinor: 2}, true},
		{"overlapping left edge", Ellipse{Center: r2.Vec{X: 97, Y: 110}, SemiMajor: 5, SemiMinor: 2}, true},
		{"touching left edge", Ellipse{Center: r2.Vec{X: 95, Y: 110}, SemiMajor: 5, SemiMinor: 2}, false},
		{"clear of top edge", Ellipse{Center: r2.Vec{X: 120, Y: 97}, SemiMajor: 5, SemiMinor: 2}, false},
		{"near corner outside", Ellipse{Center: r2.Vec{X: 96, Y: 97}, SemiMajor: 5, SemiMinor: 2}, false},
		{"near corner inside", Ellipse{Center: r2.Vec{X: 98, Y: 99}, SemiMajor: 5, SemiMinor: 2}, true},
		{"empty ellipse", Ellipse{Center: r2.Vec{X: 120, Y: 110}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Intersects(tc.ellipse, obstacle); got != tc.want {
				t.Errorf("Intersects(ellipse, rect) = %v, want %v", got, tc.want)
			}
			if got := Intersects(obstacle, tc.ellipse); got != tc.want {
				t.Errorf("Intersects(rect, ellipse) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEllipseEllipseIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Ellipse
		want bool
	}{
		{
			name: "circles overlapping",
			a:    NewCircle(r2.Vec{X: 0, Y: 0}, 10),
			b:    NewCircle(r2.Vec{X: 15, Y: 0}, 10),
			want: true,
		},
		{
			name: "circles touching",
			a:    NewCircle(r2.Vec{X: 0, Y: 0}, 10),
			b:    NewCircle(r2.Vec{X: 20, Y: 0}, 10),
			want: false,
		},
		{
			name: "flat ellipses side by side",
			a:    Ellipse{Center: r2.Vec{X: 0, Y: 0}, SemiMajor: 10, SemiMinor: 2},
			b:    Ellipse{Center: r2.Vec{X: 0, Y: 5}, SemiMajor: 10, SemiMinor: 2},
			want: false,
		},
		{
			name: "crossing ellipses",
			a:    Ellipse{Center: r2.Vec{X: 0, Y: 0}, SemiMajor: 10, SemiMinor: 2},
			b:    Ellipse{Center: r2.Vec{X: 0, Y: 0}, SemiMajor: 2, SemiMinor: 10},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Intersects(tc.a, tc.b); got != tc.want {
				t.Errorf("Intersects = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 100, H: 100}

	tests := []struct {
		name  string
		shape Shape
		want  bool
	}{
		{"circle inside", NewCircle(r2.Vec{X: 50, Y: 50}, 20), true},
		{"circle flush with border", NewCircle(r2.Vec{X: 20, Y: 50}, 20), true},
		{"circle crossing border", NewCircle(r2.Vec{X: 10, Y: 50}, 20), false},
		{"rect inside", Rect{X: 10, Y: 10, W: 20, H: 20}, true},
		{"rect outside", Rect{X: 150, Y: 150, W: 20, H: 20}, false},
		{"point inside", Rect{X: 30, Y: 30}, true},
		{"point outside", Rect{X: -1, Y: 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Contains(bounds, tc.shape); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.shape, got, tc.want)
			}
		})
	}
}

func TestIntersectsSegment(t *testing.T) {
	r := Rect{X: 40, Y: 40, W: 20, H: 20}

	tests := []struct {
		name string
		a, b r2.Vec
		want bool
	}{
		{"through middle", r2.Vec{X: 0, Y: 50}, r2.Vec{X: 100, Y: 50}, true},
		{"diagonal through", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 100, Y: 100}, true},
		{"passes above", r2.Vec{X: 0, Y: 30}, r2.Vec{X: 100, Y: 30}, false},
		{"stops short", r2.Vec{X: 0, Y: 50}, r2.Vec{X: 39, Y: 50}, false},
		{"starts inside", r2.Vec{X: 50, Y: 50}, r2.Vec{X: 200, Y: 200}, true},
		{"grazes corner", r2.Vec{X: 30, Y: 50}, r2.Vec{X: 50, Y: 30}, true},
		{"misses corner", r2.Vec{X: 30, Y: 45}, r2.Vec{X: 45, Y: 30}, false},
		{"degenerate point outside", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 0, Y: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.IntersectsSegment(tc.a, tc.b); got != tc.want {
				t.Errorf("IntersectsSegment(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := r.IntersectsSegment(tc.b, tc.a); got != tc.want {
				t.Errorf("reverse IntersectsSegment = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDirectionAndLerp(t *testing.T) {
	sx, sy := Direction(r2.Vec{X: 10, Y: 10}, r2.Vec{X: 5, Y: 10})
	if sx != -1 || sy != 0 {
		t.Errorf("Direction = (%v, %v), want (-1, 0)", sx, sy)
	}

	p := Lerp(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 100, Y: -50}, 0.01)
	if math.Abs(p.X-1) > 1e-9 || math.Abs(p.Y+0.5) > 1e-9 {
		t.Errorf("Lerp = %v, want (1, -0.5)", p)
	}
}
