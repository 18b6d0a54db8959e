package analysis

import (
	"math"
	"sort"
)

// Stats are the descriptive statistics of one marks series, NaN values
// skipped. Std is nil when fewer than two values survive (sample stddev).
type Stats struct {
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Std    *float64 `json:"std"`
	Max    int      `json:"max"`
	Min    int      `json:"min"`
	Count  int      `json:"count"`
}

// Describe computes Stats over a series, skipping NaN. Returns nil when the
// series is empty or all-NaN.
func Describe(values []float64) *Stats {
	clean := dropNaN(values)
	if len(clean) == 0 {
		return nil
	}
	sort.Float64s(clean)

	sum := 0.0
	for _, v := range clean {
		sum += v
	}
	mean := sum / float64(len(clean))

	s := &Stats{
		Mean:   mean,
		Median: median(clean),
		Min:    int(clean[0]),
		Max:    int(clean[len(clean)-1]),
		Count:  len(clean),
	}
	if len(clean) >= 2 {
		ss := 0.0
		for _, v := range clean {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(clean)-1))
		s.Std = &std
	}
	return s
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Histogram buckets values into equal-width bins over [min,max]. Returns
// bins+1 edges and the per-bin counts; the last bin is closed on both ends.
// NaN values are skipped. Empty input yields nil slices.
func Histogram(values []float64, bins int) ([]float64, []int) {
	clean := dropNaN(values)
	if len(clean) == 0 || bins <= 0 {
		return nil, nil
	}
	lo, hi := clean[0], clean[0]
	for _, v := range clean {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []float64{lo, hi}, []int{len(clean)}
	}
	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi
	counts := make([]int, bins)
	for _, v := range clean {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return edges, counts
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
