// Package correlation implements the lagged cross-correlation engine: given
// two point series it extracts numeric values, aligns lengths, z-score
// normalizes both sides, sweeps a symmetric range of lag offsets, and scores
// the strongest absolute Pearson correlation found as a percentage.
//
// The engine is pure and total: every degenerate input (empty series,
// constant series, aligned length below two) yields a defined score of 0
// rather than an error. Callers that need to distinguish "no data" from
// "no correlation" must check their inputs before calling.
package correlation

import (
	"math"

	"github.com/marketmood/marketmood/pkg/constants"
	"github.com/marketmood/marketmood/pkg/timeseries"
)

// LagResult is the Pearson correlation measured at one lag offset.
type LagResult struct {
	Lag         int     `json:"lag"`
	Correlation float64 `json:"correlation"`
}

// SweepResult holds the full lag sweep: the correlation at every tested lag
// plus the lag whose absolute correlation was greatest. Ties keep the
// earliest lag in ascending sweep order, so more negative lags win.
type SweepResult struct {
	Lags            []LagResult `json:"lags"`
	BestLag         int         `json:"bestLag"`
	BestCorrelation float64     `json:"bestCorrelation"`
	Samples         int         `json:"samples"`
}

// Score returns the strength of the sweep as a percentage in [0, 100]. The
// sign of the best correlation is discarded; strong inverse co-movement
// scores the same as strong positive co-movement.
func (r SweepResult) Score() float64 {
	return math.Abs(r.BestCorrelation) * constants.PercentageMultiplier
}

// Score extracts values from both point series, analyzes them, and returns
// the co-movement strength as a percentage in [0, 100]. maxLag bounds the
// symmetric lag sweep; negative values are treated as 0 (lag 0 only).
func Score(a, b []timeseries.Point, maxLag int) float64 {
	return Analyze(a, b, maxLag).Score()
}

// Analyze runs the full pipeline on two point series: extraction, length
// alignment, standardization, and the lag sweep. An aligned length below
// two has no defined correlation and yields a zero-valued result.
func Analyze(a, b []timeseries.Point, maxLag int) SweepResult {
	x, y := timeseries.Align(timeseries.Values(a), timeseries.Values(b))
	if len(x) < constants.MinSamples {
		return SweepResult{Samples: len(x)}
	}
	if maxLag < 0 {
		maxLag = 0
	}
	return Sweep(timeseries.Standardize(x), timeseries.Standardize(y), maxLag)
}

// Sweep computes the Pearson correlation between x and every lag-shifted copy
// of y for lags in [-maxLag, +maxLag], tracking the lag with the greatest
// absolute correlation. Both inputs must already be equal-length standardized
// series; anything shorter than two samples returns a zero-valued result.
//
// Positive lag means y trails x: the first lag samples of y are dropped and
// its tail is zero-padded, so x at time t is compared against y at time
// t+lag. Negative lag shifts the other way.
func Sweep(x, y []float64, maxLag int) SweepResult {
	n := len(x)
	if n != len(y) || n < constants.MinSamples {
		return SweepResult{Samples: n}
	}
	if maxLag < 0 {
		maxLag = 0
	}

	result := SweepResult{
		Lags:    make([]LagResult, 0, 2*maxLag+1),
		Samples: n,
	}
	bestAbs := -1.0
	for lag := -maxLag; lag <= maxLag; lag++ {
		corr := pearson(x, shift(y, lag))
		result.Lags = append(result.Lags, LagResult{Lag: lag, Correlation: corr})
		if abs := math.Abs(corr); abs > bestAbs {
			bestAbs = abs
			result.BestLag = lag
			result.BestCorrelation = corr
		}
	}
	return result
}

// shift returns a copy of xs offset by lag samples at fixed length. A
// positive lag drops the first lag elements and zero-pads the tail; a
// negative lag zero-pads the head and drops the tail. Offsets at or beyond
// the series length produce all zeros.
func shift(xs []float64, lag int) []float64 {
	n := len(xs)
	out := make([]float64, n)
	switch {
	case lag > 0:
		if lag < n {
			copy(out, xs[lag:])
		}
	case lag < 0:
		if -lag < n {
			copy(out[-lag:], xs[:n+lag])
		}
	default:
		copy(out, xs)
	}
	return out
}

// pearson computes the Pearson correlation between two equal-length series.
// Means are recomputed here even though the inputs were already standardized:
// zero-padding from the lag shift moves the local mean away from zero, and
// the shifted window must be re-centered over its own values.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	var numerator, sumSqX, sumSqY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	denominator := math.Sqrt(sumSqX * sumSqY)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
