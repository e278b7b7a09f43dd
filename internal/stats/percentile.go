// Package stats reduces a burst's outcome collection into an aggregate
// report: counts, throughput, percentile latencies, status histogram, and
// a bounded failure sample.
package stats

import (
	"math"
	"sort"
)

// Percentile computes the linearly-interpolated value at percentile p
// (0-100) over data. The input is not mutated; an empty input yields 0.
//
// The method is nearest-rank with linear interpolation between the two
// bounding ranks: for sorted data of length n, the rank position is
// k = (n-1) * p/100, and the result interpolates between the values at
// floor(k) and floor(k)+1.
func Percentile(data []float64, p int) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	k := float64(len(sorted)-1) * float64(p) / 100.0
	f := int(math.Floor(k))
	c := k - float64(f)

	if f >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	return sorted[f]*(1-c) + sorted[f+1]*c
}
