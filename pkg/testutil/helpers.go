// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/marketmood/marketmood/pkg/output"
	"github.com/marketmood/marketmood/pkg/timeseries"
)

// FindPair finds a pair result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindPair(results []output.PairResult, name string) *output.PairResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// PointsFromValues builds a point series whose records carry a single value
// field, which is the shape most unit tests need.
func PointsFromValues(values []float64) []timeseries.Point {
	points := make([]timeseries.Point, len(values))
	for i, v := range values {
		points[i] = timeseries.NewPoint(timeseries.Field{Name: "value", Value: v})
	}
	return points
}
