package exceed

import (
	"math"
	"testing"
)

func TestCountGreaterThan(t *testing.T) {
	values := []float64{-2, -1, 0, 1, 2, 3}

	tests := []struct {
		threshold float64
		want      int
	}{
		{0, 3},
		{1, 2},
		{3, 0},
		{-3, 6},
	}

	for _, tt := range tests {
		if got := CountGreaterThan(values, tt.threshold); got != tt.want {
			t.Errorf("CountGreaterThan(%v) = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestCountLessThan(t *testing.T) {
	values := []float64{-2, -1, 0, 1, 2, 3}

	tests := []struct {
		threshold float64
		want      int
	}{
		{0, 2},
		{-2, 0},
		{4, 6},
	}

	for _, tt := range tests {
		if got := CountLessThan(values, tt.threshold); got != tt.want {
			t.Errorf("CountLessThan(%v) = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestNonFiniteValuesNeverCounted(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0.5}

	if got := CountGreaterThan(values, 0); got != 1 {
		t.Errorf("CountGreaterThan = %d, want 1 (only the finite value)", got)
	}
	if got := CountLessThan(values, 1); got != 1 {
		t.Errorf("CountLessThan = %d, want 1 (only the finite value)", got)
	}
}

func TestCountBeyondDirectionalRule(t *testing.T) {
	values := []float64{-0.9, -0.4, 0.1, 0.5, 0.8}

	tests := []struct {
		name   string
		cutoff float64
		direct bool
		want   int
	}{
		{"positive cutoff, direct counts above", 0.3, true, 2},
		{"positive cutoff, inverse counts below", 0.3, false, 3},
		{"negative cutoff, direct counts below", -0.5, true, 1},
		{"negative cutoff, inverse counts above", -0.5, false, 4},
		{"zero cutoff flips like negative", 0, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountBeyond(values, tt.cutoff, tt.direct); got != tt.want {
				t.Errorf("CountBeyond(%v, direct=%v) = %d, want %d", tt.cutoff, tt.direct, got, tt.want)
			}
		})
	}
}
