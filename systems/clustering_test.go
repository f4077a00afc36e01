package systems

import (
	"math"
	"testing"
)

func TestNarrowTieGoesToLowestBucket(t *testing.T) {
	// threshold = (2-1)/2 = 0.5: A and C fall in bucket 0, B in bucket 1.
	// Bucket 0 scores (2+4)/(1+2) = 2, bucket 1 scores 3/1.5 = 2.
	candidates := []Candidate{
		{ID: 0, Intensity: 2, Distance: 1},
		{ID: 1, Intensity: 3, Distance: 1.5},
		{ID: 2, Intensity: 4, Distance: 2},
	}

	got := Narrow(candidates, 2)
	if len(got) != 2 || got[0].ID != 0 || got[1].ID != 2 {
		t.Fatalf("Narrow() = %v, want candidates 0 and 2", got)
	}
	if rep := Representative(got); rep.ID != 0 {
		t.Errorf("Representative().ID = %d, want 0", rep.ID)
	}
}

func TestNarrowPicksHighestScore(t *testing.T) {
	candidates := []Candidate{
		{ID: 0, Intensity: 2, Distance: 1},
		{ID: 1, Intensity: 4, Distance: 1.5},
		{ID: 2, Intensity: 4, Distance: 2},
	}

	got := Narrow(candidates, 2)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Narrow() = %v, want only candidate 1", got)
	}
}

func TestNarrowEqualDistancesStops(t *testing.T) {
	candidates := []Candidate{
		{ID: 7, Intensity: 1, Distance: 5},
		{ID: 3, Intensity: 9, Distance: 5},
		{ID: 5, Intensity: 2, Distance: 5},
	}

	got := Narrow(candidates, 4)
	if len(got) != 3 {
		t.Fatalf("len(Narrow()) = %d, want 3", len(got))
	}
	if rep := Representative(got); rep.ID != 3 {
		t.Errorf("Representative().ID = %d, want 3 (lowest ID on equal distance)", rep.ID)
	}
}

func TestNarrowSingleAndEmpty(t *testing.T) {
	one := []Candidate{{ID: 4, Intensity: 1, Distance: 10}}
	if got := Narrow(one, 3); len(got) != 1 || got[0].ID != 4 {
		t.Errorf("Narrow(single) = %v, want the single candidate", got)
	}
	if got := Narrow(nil, 3); len(got) != 0 {
		t.Errorf("Narrow(nil) = %v, want empty", got)
	}
}

func TestNarrowSingleClusterKeepsSet(t *testing.T) {
	// With k = 1 every candidate lands in bucket 0, so nothing is discarded.
	candidates := []Candidate{
		{ID: 0, Intensity: 1, Distance: 1},
		{ID: 1, Intensity: 1, Distance: 4},
		{ID: 2, Intensity: 1, Distance: 9},
	}
	if got := Narrow(candidates, 1); len(got) != 3 {
		t.Errorf("len(Narrow(k=1)) = %d, want 3", len(got))
	}
}

func TestNarrowDeterministic(t *testing.T) {
	base := []Candidate{
		{ID: 0, Intensity: 3, Distance: 12},
		{ID: 1, Intensity: 1, Distance: 40},
		{ID: 2, Intensity: 8, Distance: 25},
		{ID: 3, Intensity: 2, Distance: 31},
		{ID: 4, Intensity: 5, Distance: 18},
		{ID: 5, Intensity: 7, Distance: 55},
		{ID: 6, Intensity: 1, Distance: 60},
	}
	reversed := make([]Candidate, len(base))
	for i, c := range base {
		reversed[len(base)-1-i] = c
	}

	a := Representative(Narrow(base, 3))
	b := Representative(Narrow(reversed, 3))
	if a.ID != b.ID {
		t.Errorf("Representative differs by input order: %d vs %d", a.ID, b.ID)
	}
	for i := 0; i < 10; i++ {
		if c := Representative(Narrow(base, 3)); c.ID != a.ID {
			t.Fatalf("run %d: Representative().ID = %d, want %d", i, c.ID, a.ID)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		bucket []Candidate
		want   float64
	}{
		{"single", []Candidate{{Intensity: 4, Distance: 2}}, 2},
		{"sum", []Candidate{{Intensity: 1, Distance: 1}, {Intensity: 5, Distance: 3}}, 1.5},
		{"zero distance", []Candidate{{Intensity: 1, Distance: 0}}, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.bucket); got != tc.want {
				t.Errorf("Score() = %v, want %v", got, tc.want)
			}
		})
	}
}
