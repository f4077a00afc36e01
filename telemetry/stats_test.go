package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeIntensityStats(t *testing.T) {
	// Zeros are ignored; the rest has mean 5 and sample std sqrt(32/7).
	values := []float64{0, 2, 4, 4, 0, 4, 5, 5, 7, 9}
	s := ComputeIntensityStats(values)

	if s.Active != 8 {
		t.Errorf("Active = %d, want 8", s.Active)
	}
	if math.Abs(s.Mean-5) > 1e-9 {
		t.Errorf("Mean = %v, want 5", s.Mean)
	}
	if want := math.Sqrt(32.0 / 7.0); math.Abs(s.Std-want) > 1e-9 {
		t.Errorf("Std = %v, want %v", s.Std, want)
	}
	if math.Abs(s.P50-4.5) > 1e-9 {
		t.Errorf("P50 = %v, want 4.5", s.P50)
	}
	if s.Max != 9 {
		t.Errorf("Max = %v, want 9", s.Max)
	}
}

func TestComputeIntensityStatsEmpty(t *testing.T) {
	if s := ComputeIntensityStats([]float64{0, 0}); s != (IntensityStats{}) {
		t.Errorf("ComputeIntensityStats(zeros) = %+v, want zero value", s)
	}
	if s := ComputeIntensityStats([]float64{3}); s.Mean != 3 || s.Std != 0 || s.Max != 3 {
		t.Errorf("ComputeIntensityStats(single) = %+v", s)
	}
}
