package game

import (
	"log/slog"

	"github.com/pthm-cable/aco/telemetry"
)

// Monitor turns a board's counters into telemetry windows, bookmarks and
// CSV rows. It is driven by a single goroutine.
type Monitor struct {
	board     *Board
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	detector  *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	logStats  bool

	// StatsCallback, if set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)

	windows   int
	last      telemetry.WindowStats
	bookmarks []telemetry.Bookmark
}

// NewMonitor creates a monitor for b. output may be nil.
func NewMonitor(b *Board, output *telemetry.OutputManager, logStats bool) *Monitor {
	return &Monitor{
		board:     b,
		collector: b.collector,
		perf:      b.perf,
		detector:  telemetry.NewBookmarkDetector(10),
		output:    output,
		logStats:  logStats,
	}
}

// Poll flushes the current window if it has elapsed and reports whether it did.
func (m *Monitor) Poll() bool {
	if !m.collector.ShouldFlush() {
		return false
	}
	m.Flush()
	return true
}

// Flush closes the current window regardless of its length.
func (m *Monitor) Flush() telemetry.WindowStats {
	if m.collector == nil {
		return telemetry.WindowStats{}
	}

	stats := m.collector.Flush(m.board.Sample())
	perfStats := m.perf.Stats()
	m.perf.Reset()
	m.windows++
	m.last = stats

	if m.StatsCallback != nil {
		m.StatsCallback(stats)
	}

	// Log stats if enabled (console output)
	if m.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := m.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := m.output.WritePerf(perfStats, stats.WindowEndSec); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range m.detector.Check(stats) {
		m.bookmarks = append(m.bookmarks, bm)
		if m.logStats {
			bm.LogBookmark()
		}
		if err := m.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
	return stats
}

// Windows returns the number of flushed windows.
func (m *Monitor) Windows() int { return m.windows }

// Last returns the most recent window.
func (m *Monitor) Last() telemetry.WindowStats { return m.last }

// Bookmarks returns every bookmark triggered so far.
func (m *Monitor) Bookmarks() []telemetry.Bookmark { return m.bookmarks }
