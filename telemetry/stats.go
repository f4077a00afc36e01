package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	WindowEndSec   float64 `csv:"window_end"`

	// Board state at window end
	Ants       int `csv:"ants"`
	Returning  int `csv:"returning"`
	Pheromones int `csv:"pheromones"`

	// Movement during window
	Spawns       int     `csv:"spawns"`
	Moves        int     `csv:"moves"`
	GuidedMoves  int     `csv:"guided_moves"`
	RandomMoves  int     `csv:"random_moves"`
	BlockedMoves int     `csv:"blocked_moves"`
	GuidedShare  float64 `csv:"guided_share"`

	// Pheromone field activity
	Deposits         int `csv:"deposits"`
	PheromoneCreated int `csv:"pheromones_created"`
	Evaporations     int `csv:"evaporations"`

	// Trips
	Arrivals      int `csv:"arrivals"`
	Returns       int `csv:"returns"`
	TotalArrivals int `csv:"total_arrivals"`
	TotalReturns  int `csv:"total_returns"`

	// Subscriber events dropped on full queues
	DroppedEvents int `csv:"dropped_events"`

	// Intensity distribution over pheromones with intensity > 0
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`
	IntensityMax  float64 `csv:"intensity_max"`
	ActiveTrail   int     `csv:"active_pheromones"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// IntensityStats summarises the pheromone intensity distribution.
type IntensityStats struct {
	Mean, Std     float64
	P50, P90, Max float64
	Active        int // pheromones with intensity > 0
}

// ComputeIntensityStats summarises the positive values. Zero-intensity
// pheromones are left out since the field never deletes them.
func ComputeIntensityStats(values []float64) IntensityStats {
	active := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			active = append(active, v)
		}
	}
	n := len(active)
	if n == 0 {
		return IntensityStats{}
	}

	var s IntensityStats
	s.Active = n
	if n == 1 {
		s.Mean = active[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(active, nil)
	}

	sort.Float64s(active)
	s.P50 = Percentile(active, 0.50)
	s.P90 = Percentile(active, 0.90)
	s.Max = floats.Max(active)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStartSec),
		slog.Float64("window_end", s.WindowEndSec),
		slog.Int("ants", s.Ants),
		slog.Int("returning", s.Returning),
		slog.Int("pheromones", s.Pheromones),
		slog.Int("spawns", s.Spawns),
		slog.Int("moves", s.Moves),
		slog.Int("guided_moves", s.GuidedMoves),
		slog.Int("random_moves", s.RandomMoves),
		slog.Int("blocked_moves", s.BlockedMoves),
		slog.Float64("guided_share", s.GuidedShare),
		slog.Int("deposits", s.Deposits),
		slog.Int("pheromones_created", s.PheromoneCreated),
		slog.Int("evaporations", s.Evaporations),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("returns", s.Returns),
		slog.Int("total_arrivals", s.TotalArrivals),
		slog.Int("total_returns", s.TotalReturns),
		slog.Int("dropped_events", s.DroppedEvents),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_std", s.IntensityStd),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("intensity_max", s.IntensityMax),
		slog.Int("active_pheromones", s.ActiveTrail),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndSec,
		"ants", s.Ants,
		"returning", s.Returning,
		"pheromones", s.Pheromones,
		"spawns", s.Spawns,
		"moves", s.Moves,
		"guided_share", s.GuidedShare,
		"blocked_moves", s.BlockedMoves,
		"deposits", s.Deposits,
		"evaporations", s.Evaporations,
		"arrivals", s.Arrivals,
		"returns", s.Returns,
		"dropped_events", s.DroppedEvents,
		"intensity_mean", s.IntensityMean,
		"intensity_p90", s.IntensityP90,
		"intensity_max", s.IntensityMax,
		"active_pheromones", s.ActiveTrail,
	)
}
