package telemetry

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Activity names for the board's concurrent loops.
const (
	ActivitySpawn     = "spawn"
	ActivityMove      = "move"
	ActivityEvaporate = "evaporate"
)

// PerfCollector tracks round durations per activity over a rolling window.
// Activities run concurrently, so every method is safe for concurrent use.
// A nil PerfCollector ignores all records.
type PerfCollector struct {
	mu         sync.Mutex
	windowSize int
	samples    map[string][]time.Duration
	rounds     map[string]int // rounds since the last Reset
	since      time.Time

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of rounds per activity to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make(map[string][]time.Duration),
		rounds:     make(map[string]int),
		since:      time.Now(),
	}
}

// Record adds a round duration sample for the named activity.
func (p *PerfCollector) Record(name string, d time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	s := append(p.samples[name], d)
	if len(s) > p.windowSize {
		s = s[1:]
	}
	p.samples[name] = s
	p.rounds[name]++
}

// Time records the time elapsed since start for the named activity.
func (p *PerfCollector) Time(name string, start time.Time) {
	p.Record(name, time.Since(start))
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// ActivityStats holds aggregated timing for one activity.
type ActivityStats struct {
	Avg, Min, Max time.Duration
	Rounds        int     // rounds since the last reset
	RoundsPerSec  float64 // rounds per wall-clock second since the last reset
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Activities map[string]ActivityStats

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{Activities: map[string]ActivityStats{}}
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}
	elapsed := time.Since(p.since).Seconds()

	out := PerfStats{
		Activities:    make(map[string]ActivityStats, len(p.samples)),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	for name, s := range p.samples {
		if len(s) == 0 {
			continue
		}
		var total time.Duration
		minD, maxD := s[0], s[0]
		for _, d := range s {
			total += d
			minD = min(minD, d)
			maxD = max(maxD, d)
		}
		as := ActivityStats{
			Avg:    total / time.Duration(len(s)),
			Min:    minD,
			Max:    maxD,
			Rounds: p.rounds[name],
		}
		if elapsed > 0 {
			as.RoundsPerSec = float64(as.Rounds) / elapsed
		}
		out.Activities[name] = as
	}
	return out
}

// Reset clears round counters, keeping the duration samples.
func (p *PerfCollector) Reset() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rounds = make(map[string]int)
	p.since = time.Now()
}

// SortedNames returns activity names sorted by average duration (descending).
func (s PerfStats) SortedNames() []string {
	names := make([]string, 0, len(s.Activities))
	for name := range s.Activities {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := s.Activities[names[i]].Avg, s.Activities[names[j]].Avg
		if ai != aj {
			return ai > aj
		}
		return names[i] < names[j]
	})
	return names
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{}
	for _, name := range s.SortedNames() {
		a := s.Activities[name]
		attrs = append(attrs,
			name+"_avg_us", a.Avg.Microseconds(),
			name+"_max_us", a.Max.Microseconds(),
			name+"_rounds_per_sec", int(a.RoundsPerSec),
		)
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3*len(s.Activities)+1)
	for _, name := range s.SortedNames() {
		a := s.Activities[name]
		attrs = append(attrs,
			slog.Int64(name+"_avg_us", a.Avg.Microseconds()),
			slog.Int64(name+"_max_us", a.Max.Microseconds()),
			slog.Float64(name+"_rounds_per_sec", a.RoundsPerSec),
		)
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd        float64 `csv:"window_end"`
	SpawnAvgUS       int64   `csv:"spawn_avg_us"`
	SpawnRounds      int     `csv:"spawn_rounds"`
	MoveAvgUS        int64   `csv:"move_avg_us"`
	MoveMaxUS        int64   `csv:"move_max_us"`
	MoveRoundsPerSec float64 `csv:"move_rounds_per_sec"`
	EvapAvgUS        int64   `csv:"evaporate_avg_us"`
	EvapMaxUS        int64   `csv:"evaporate_max_us"`
	EvapRoundsPerSec float64 `csv:"evaporate_rounds_per_sec"`
	FPS              float64 `csv:"fps"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd float64) PerfStatsCSV {
	spawn := s.Activities[ActivitySpawn]
	move := s.Activities[ActivityMove]
	evap := s.Activities[ActivityEvaporate]
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		SpawnAvgUS:       spawn.Avg.Microseconds(),
		SpawnRounds:      spawn.Rounds,
		MoveAvgUS:        move.Avg.Microseconds(),
		MoveMaxUS:        move.Max.Microseconds(),
		MoveRoundsPerSec: move.RoundsPerSec,
		EvapAvgUS:        evap.Avg.Microseconds(),
		EvapMaxUS:        evap.Max.Microseconds(),
		EvapRoundsPerSec: evap.RoundsPerSec,
		FPS:              s.FPS,
	}
}
