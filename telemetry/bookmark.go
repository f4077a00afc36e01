package telemetry

import (
	"fmt"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstArrival      BookmarkType = "first_arrival"
	BookmarkFirstReturn       BookmarkType = "first_return"
	BookmarkTrailBreakthrough BookmarkType = "trail_breakthrough"
	BookmarkTrailFading       BookmarkType = "trail_fading"
	BookmarkStableTrail       BookmarkType = "stable_trail"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	TimeSec     float64      `csv:"time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"time", b.TimeSec,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	arrived           bool
	returned          bool
	recentActivePeak  int // peak active pheromone count since the last fade
	stableWindowCount int // consecutive windows with a steady guided share
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable trail detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.arrived && stats.TotalArrivals > 0 {
		bd.arrived = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstArrival,
			TimeSec:     stats.WindowEndSec,
			Description: fmt.Sprintf("First ant reached the destination (%d arrivals)", stats.TotalArrivals),
		})
	}
	if !bd.returned && stats.TotalReturns > 0 {
		bd.returned = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstReturn,
			TimeSec:     stats.WindowEndSec,
			Description: fmt.Sprintf("First round trip completed (%d returns)", stats.TotalReturns),
		})
	}

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkTrailBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkTrailFading(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableTrail(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if stats.ActiveTrail > bd.recentActivePeak {
		bd.recentActivePeak = stats.ActiveTrail
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		// oldest first
		return append(slices.Clone(bd.history[bd.historyIdx:]), bd.history[:bd.historyIdx]...)
	}
	return bd.history[:bd.historyIdx]
}

// checkTrailBreakthrough fires when the share of guided moves jumps to more
// than twice its rolling average.
func (bd *BookmarkDetector) checkTrailBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Moves < 10 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.GuidedShare
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.GuidedShare > avg*2.0 && stats.GuidedShare >= 0.25 {
		return &Bookmark{
			Type:        BookmarkTrailBreakthrough,
			TimeSec:     stats.WindowEndSec,
			Description: fmt.Sprintf("Guided share %.2f is %.1fx average (%.2f)", stats.GuidedShare, stats.GuidedShare/avg, avg),
		}
	}
	return nil
}

// checkTrailFading fires when the active pheromone count drops more than
// 30% below its recent peak.
func (bd *BookmarkDetector) checkTrailFading(stats WindowStats) *Bookmark {
	if bd.recentActivePeak < 10 {
		return nil
	}

	drop := 1.0 - float64(stats.ActiveTrail)/float64(bd.recentActivePeak)
	if drop > 0.30 {
		oldPeak := bd.recentActivePeak
		bd.recentActivePeak = stats.ActiveTrail

		return &Bookmark{
			Type:        BookmarkTrailFading,
			TimeSec:     stats.WindowEndSec,
			Description: fmt.Sprintf("Active pheromones fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.ActiveTrail),
		}
	}
	return nil
}

// checkStableTrail fires once the guided share has stayed steady and
// substantial over the last four windows for five consecutive checks.
func (bd *BookmarkDetector) checkStableTrail(stats WindowStats) *Bookmark {
	if stats.GuidedShare < 0.3 {
		bd.stableWindowCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	shares := make([]float64, 0, 4)
	for _, h := range history[len(history)-4:] {
		shares = append(shares, h.GuidedShare)
	}
	mean, variance := stat.PopMeanVariance(shares, nil)

	cv2 := 0.0
	if mean > 0 {
		cv2 = variance / (mean * mean)
	}
	if cv2 < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowCount++
	} else {
		bd.stableWindowCount = 0
	}

	if bd.stableWindowCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableTrail,
			TimeSec:     stats.WindowEndSec,
			Description: fmt.Sprintf("Guided share steady around %.2f over 5+ windows", mean),
		}
	}
	return nil
}
