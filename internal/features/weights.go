package features

import (
	"math"
	"time"
)

// DefaultHalfLifeDays is the recency half-life used when none is configured.
// A match played one half-life before the reference date counts half as much
// as one played on the eve of it.
const DefaultHalfLifeDays = 180

// decayWeight returns the exponential recency weight of a match played on
// date, seen from asOf: 2^(-age_days / halfLife).
func decayWeight(date, asOf time.Time, halfLifeDays float64) float64 {
	ageDays := asOf.Sub(date).Hours() / 24
	return math.Exp2(-ageDays / halfLifeDays)
}

// weightedMean returns Σwv/Σw, or nil when no values qualify. Weights are
// normalized over the supplied values only, so excluding an edge-case match
// from one statistic does not distort the others.
func weightedMean(vals, weights []float64) *float64 {
	var sumWV, sumW float64
	for i, v := range vals {
		sumWV += weights[i] * v
		sumW += weights[i]
	}
	if sumW == 0 {
		return nil
	}
	m := sumWV / sumW
	return &m
}
