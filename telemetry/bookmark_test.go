package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FirstArrivalOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(WindowStats{WindowEndSec: 10}); len(got) != 0 {
		t.Errorf("unexpected bookmarks %v", got)
	}
	got := bd.Check(WindowStats{WindowEndSec: 20, Arrivals: 2, TotalArrivals: 2})
	if !hasBookmark(got, BookmarkFirstArrival) {
		t.Error("expected first_arrival bookmark")
	}
	got = bd.Check(WindowStats{WindowEndSec: 30, Arrivals: 1, TotalArrivals: 3, TotalReturns: 1})
	if hasBookmark(got, BookmarkFirstArrival) {
		t.Error("first_arrival should only trigger once")
	}
	if !hasBookmark(got, BookmarkFirstReturn) {
		t.Error("expected first_return bookmark")
	}
}

func TestBookmarkDetector_TrailBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndSec: float64(i * 10), Moves: 100, GuidedShare: 0.1})
	}

	got := bd.Check(WindowStats{WindowEndSec: 50, Moves: 100, GuidedShare: 0.6})
	if !hasBookmark(got, BookmarkTrailBreakthrough) {
		t.Error("expected trail_breakthrough bookmark")
	}
}

func TestBookmarkDetector_TrailFading(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndSec: float64(i * 10), ActiveTrail: 100})
	}

	got := bd.Check(WindowStats{WindowEndSec: 50, ActiveTrail: 50})
	if !hasBookmark(got, BookmarkTrailFading) {
		t.Error("expected trail_fading bookmark")
	}
	// Peak resets after triggering.
	got = bd.Check(WindowStats{WindowEndSec: 60, ActiveTrail: 45})
	if hasBookmark(got, BookmarkTrailFading) {
		t.Error("trail_fading should not retrigger against the old peak")
	}
}

func TestBookmarkDetector_StableTrail(t *testing.T) {
	bd := NewBookmarkDetector(10)

	count := 0
	for i := 0; i < 12; i++ {
		got := bd.Check(WindowStats{WindowEndSec: float64(i * 10), Moves: 100, GuidedShare: 0.5})
		if hasBookmark(got, BookmarkStableTrail) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("stable_trail triggered %d times, want 1", count)
	}
}
