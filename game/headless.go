package game

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/aco/telemetry"
)

// pollInterval is how often headless runs check for an elapsed window.
const pollInterval = 100 * time.Millisecond

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	Duration time.Duration            // stop after this long (0 = until ctx is done)
	Output   *telemetry.OutputManager // nil disables CSV output
	LogStats bool                     // log every window via slog
}

// Summary describes a finished headless run.
type Summary struct {
	Elapsed          time.Duration
	Ants             int
	Returning        int
	Pheromones       int
	ActivePheromones int
	TotalArrivals    int
	TotalReturns     int
	Windows          int
	Bookmarks        []telemetry.Bookmark
}

// RunHeadless runs b without graphics until ctx is done, the duration
// elapses or the board is stopped, flushing telemetry windows as they
// elapse. The board is stopped on return.
func RunHeadless(ctx context.Context, b *Board, opts HeadlessOptions) (Summary, error) {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	start := time.Now()
	m := NewMonitor(b, opts.Output, opts.LogStats)
	b.collector.Reset()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(gctx) })
	g.Go(func() error {
		t := time.NewTicker(pollInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-b.Done():
				return nil
			case <-t.C:
				m.Poll()
			}
		}
	})
	err := g.Wait()
	b.Stop()

	// Close the trailing partial window.
	last := m.Flush()

	sample := b.Sample()
	return Summary{
		Elapsed:          time.Since(start),
		Ants:             sample.Ants,
		Returning:        sample.Returning,
		Pheromones:       sample.Pheromones,
		ActivePheromones: telemetry.ComputeIntensityStats(sample.Intensities).Active,
		TotalArrivals:    last.TotalArrivals,
		TotalReturns:     last.TotalReturns,
		Windows:          m.Windows(),
		Bookmarks:        m.Bookmarks(),
	}, err
}
