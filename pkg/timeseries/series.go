package timeseries

import (
	"math"

	"github.com/marketmood/marketmood/pkg/mathutil"
)

// Mean returns the arithmetic mean of the series, or 0 for an empty series.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of the series (divisor n,
// not n-1), or 0 for an empty series.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		diff := x - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Standardize returns a z-score normalized copy of the series: zero mean and
// unit population standard deviation. A constant series has no variation to
// rescale, so it becomes all zeros rather than dividing by zero.
func Standardize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	sigma := StdDev(xs)
	if sigma == 0 {
		return out
	}
	mean := Mean(xs)
	for i, x := range xs {
		out[i] = (x - mean) / sigma
	}
	return out
}

// Align truncates both series to the length of the shorter one, keeping
// elements from index 0. No interpolation or resampling is performed; the
// tail of the longer series is dropped.
func Align(a, b []float64) ([]float64, []float64) {
	n := mathutil.MinInt(len(a), len(b))
	return a[:n], b[:n]
}
