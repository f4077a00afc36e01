package telemetry

import (
	"sync"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	var wg sync.WaitGroup
	for _, name := range []string{ActivityMove, ActivityEvaporate} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				pc.Record(name, time.Duration(i+1)*time.Millisecond)
			}
		}(name)
	}
	wg.Wait()

	stats := pc.Stats()
	move, ok := stats.Activities[ActivityMove]
	if !ok {
		t.Fatal("expected move activity to be tracked")
	}
	if move.Avg != 3*time.Millisecond {
		t.Errorf("Avg = %v, want 3ms", move.Avg)
	}
	if move.Min != time.Millisecond || move.Max != 5*time.Millisecond {
		t.Errorf("Min/Max = %v/%v, want 1ms/5ms", move.Min, move.Max)
	}
	if move.Rounds != 5 {
		t.Errorf("Rounds = %d, want 5", move.Rounds)
	}
	if _, ok := stats.Activities[ActivityEvaporate]; !ok {
		t.Error("expected evaporate activity to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	for i := 0; i < 10; i++ {
		pc.Record(ActivityMove, time.Duration(i+1)*time.Millisecond)
	}

	move := pc.Stats().Activities[ActivityMove]
	// Only samples 6..10 remain.
	if move.Avg != 8*time.Millisecond {
		t.Errorf("Avg = %v, want 8ms", move.Avg)
	}
	if move.Rounds != 10 {
		t.Errorf("Rounds = %d, want 10", move.Rounds)
	}

	pc.Reset()
	if r := pc.Stats().Activities[ActivityMove].Rounds; r != 0 {
		t.Errorf("Rounds after Reset = %d, want 0", r)
	}
}

func TestPerfStats_SortedNames(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.Record(ActivitySpawn, time.Microsecond)
	pc.Record(ActivityMove, time.Millisecond)
	pc.Record(ActivityEvaporate, 10*time.Microsecond)

	names := pc.Stats().SortedNames()
	want := []string{ActivityMove, ActivityEvaporate, ActivitySpawn}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("SortedNames() = %v, want %v", names, want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.Record(ActivityMove, 2*time.Millisecond)

	row := pc.Stats().ToCSV(12.5)
	if row.WindowEnd != 12.5 || row.MoveAvgUS != 2000 {
		t.Errorf("ToCSV() = %+v, want window_end 12.5 and move_avg_us 2000", row)
	}
}
