// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/marketmood/marketmood/pkg/constants"
)

// RoundScore rounds a value to two decimals, i.e. to represent a percentage
// score for display. Used for making logical comparisons.
func RoundScore(val float64) float64 {
	return math.Round(val*constants.ScorePrecision) / constants.ScorePrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp bounds a value to the interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// MinInt returns the minimum of two int values
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
