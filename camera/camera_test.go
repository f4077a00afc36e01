package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/aco/geom"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 0.01 }

func TestNew(t *testing.T) {
	cam := New(1280, 720, geom.Rect{X: 0, Y: 0, W: 1000, H: 1000})

	// Should be centered on the board
	if cam.X != 500 || cam.Y != 500 {
		t.Errorf("expected camera at (500, 500), got (%f, %f)", cam.X, cam.Y)
	}
	// Height is the limiting dimension: 720/1000 * 0.9
	if !near(cam.Zoom, 0.648) {
		t.Errorf("expected zoom 0.648, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, geom.Rect{X: 100, Y: 100, W: 800, H: 400})

	sx, sy := cam.WorldToScreen(500, 300)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, geom.Rect{W: 2560, H: 1440})
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClamps(t *testing.T) {
	cam := New(1280, 720, geom.Rect{W: 1000, H: 1000})
	cam.SetZoom(1)

	cam.Pan(-5000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}
	cam.Pan(0, 5000)
	if cam.Y != 1000 {
		t.Errorf("expected Y clamped to 1000, got %f", cam.Y)
	}
	cam.Pan(100, 0)
	if cam.X != 100 {
		t.Errorf("expected X 100 after pan, got %f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1000, 1000, geom.Rect{W: 1000, H: 1000})

	// Fit zoom is 0.9, so the minimum is half of it
	if !near(cam.MinZoom, 0.45) {
		t.Errorf("expected MinZoom 0.45, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if !near(cam.Zoom, 0.45) {
		t.Errorf("expected zoom clamped to 0.45, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, geom.Rect{W: 1000, H: 1000})
	wx, wy := cam.ScreenToWorld(400, 300)

	cam.ZoomAt(400, 300, 2)

	gx, gy := cam.ScreenToWorld(400, 300)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, geom.Rect{W: 2560, H: 1440})
	cam.SetZoom(1)

	// Visible range in board coords: (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestSetWorldRefits(t *testing.T) {
	cam := New(1000, 1000, geom.Rect{W: 1000, H: 1000})
	cam.Pan(200, 200)
	cam.SetZoom(3)

	cam.SetWorld(geom.Rect{X: 0, Y: 0, W: 2000, H: 500})

	if cam.X != 1000 || cam.Y != 250 {
		t.Errorf("expected position (1000, 250), got (%f, %f)", cam.X, cam.Y)
	}
	if !near(cam.Zoom, 0.45) {
		t.Errorf("expected zoom 0.45, got %f", cam.Zoom)
	}
}
