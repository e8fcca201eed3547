package timeseries

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Simple series", []float64{1, 2, 3, 4}, 2.5},
		{"Single element", []float64{7}, 7},
		{"Empty series", []float64{}, 0},
		{"Negative values", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.input); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Mean() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestStdDevUsesPopulationDivisor(t *testing.T) {
	// Population sigma of [1,2,3,4] is sqrt(1.25); the sample version would
	// be sqrt(5/3).
	got := StdDev([]float64{1, 2, 3, 4})
	expected := math.Sqrt(1.25)
	if math.Abs(got-expected) > epsilon {
		t.Errorf("StdDev() = %v, expected %v", got, expected)
	}
}

func TestStdDevDegenerate(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %v, expected 0", got)
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("StdDev(constant) = %v, expected 0", got)
	}
}

func TestStandardize(t *testing.T) {
	out := Standardize([]float64{2, 4, 6, 8})

	if math.Abs(Mean(out)) > epsilon {
		t.Errorf("standardized mean = %v, expected 0", Mean(out))
	}
	if math.Abs(StdDev(out)-1) > epsilon {
		t.Errorf("standardized sigma = %v, expected 1", StdDev(out))
	}
}

func TestStandardizeConstantSeriesIsAllZeros(t *testing.T) {
	out := Standardize([]float64{5, 5, 5, 5, 5})
	for i, v := range out {
		if v != 0 {
			t.Errorf("Standardize(constant)[%d] = %v, expected 0", i, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("Standardize(constant)[%d] is not finite", i)
		}
	}
}

func TestStandardizeDoesNotMutateInput(t *testing.T) {
	in := []float64{1, 2, 3}
	_ = Standardize(in)
	if in[0] != 1 || in[1] != 2 || in[2] != 3 {
		t.Errorf("Standardize mutated its input: %v", in)
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name      string
		a         []float64
		b         []float64
		expectedN int
	}{
		{"Equal lengths", []float64{1, 2, 3}, []float64{4, 5, 6}, 3},
		{"First longer", []float64{1, 2, 3, 4, 5}, []float64{1, 2}, 2},
		{"Second longer", []float64{1}, []float64{1, 2, 3}, 1},
		{"One empty", []float64{1, 2}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Align(tt.a, tt.b)
			if len(a) != tt.expectedN || len(b) != tt.expectedN {
				t.Errorf("Align() lengths = %d, %d, expected %d", len(a), len(b), tt.expectedN)
			}
			// Alignment keeps the head of each series.
			for i := range a {
				if a[i] != tt.a[i] {
					t.Errorf("Align() a[%d] = %v, expected %v", i, a[i], tt.a[i])
				}
			}
		})
	}
}
