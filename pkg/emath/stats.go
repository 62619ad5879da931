package emath

import(
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentile follows numpy's default ("linear") definition: p is in
// [0,100], and the result interpolates between the two closest ranks of
// the sorted values. gonum's stat.Quantile has no equivalent of this.
// Empty input gives NaN.
func Percentile(vals []float64, p float64) float64 {
	return Percentiles(vals, []float64{p})[0]
}

// Percentiles sorts once and evaluates each of the percentiles in ps
func Percentiles(vals []float64, ps []float64) []float64 {
	out := make([]float64, len(ps))
	if len(vals) == 0 {
		for i := range out { out[i] = math.NaN() }
		return out
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)

	for i, p := range ps {
		idx := p / 100.0 * float64(n-1)
		lo := int(math.Floor(idx))
		if lo < 0   { lo = 0 }
		if lo > n-1 { lo = n-1 }
		hi := lo + 1
		if hi > n-1 { hi = n-1 }
		frac := idx - float64(lo)
		out[i] = sorted[lo] + (sorted[hi]-sorted[lo])*frac
	}
	return out
}

// Mean returns NaN for an empty slice, like numpy.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// EqualEdges returns nbins+1 evenly spaced edges over [lo,hi]. As in
// scipy's binned_statistic, a degenerate range is widened by 0.5 each way.
func EqualEdges(lo, hi float64, nbins int) []float64 {
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return pinEnds(floats.Span(make([]float64, nbins+1), lo, hi), lo, hi)
}

// LogEdges returns nbins+1 edges spaced evenly in log over [lo,hi],
// which must both be positive. A degenerate range is widened by a
// factor of e each way.
func LogEdges(lo, hi float64, nbins int) []float64 {
	if lo == hi {
		lo /= math.E
		hi *= math.E
	}
	return pinEnds(floats.LogSpan(make([]float64, nbins+1), lo, hi), lo, hi)
}

// pinEnds makes the outer edges exactly lo and hi, so the extreme values
// can't round their way out of the bins.
func pinEnds(edges []float64, lo, hi float64) []float64 {
	edges[0] = lo
	edges[len(edges)-1] = hi
	return edges
}

// BinIndex finds the bin [edges[i], edges[i+1]) holding v. The last bin
// is closed when closedLast is set. Values outside the edges give -1.
func BinIndex(edges []float64, v float64, closedLast bool) int {
	nbins := len(edges) - 1
	if nbins < 1 || math.IsNaN(v) {
		return -1
	}
	if v == edges[nbins] && closedLast {
		return nbins - 1
	}
	if v < edges[0] || v >= edges[nbins] {
		return -1
	}
	// first edge strictly greater than v, minus one
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	if i >= nbins {
		i = nbins - 1
	}
	return i
}

// BinnedMean averages y over the bins that x falls into, like
// scipy.stats.binned_statistic(statistic='mean'). Entries with
// keep[i]==false are skipped (keep may be nil). Empty bins are NaN.
func BinnedMean(x, y []float64, keep []bool, edges []float64, closedLast bool) []float64 {
	nbins := len(edges) - 1
	sums := make([]float64, nbins)
	counts := make([]int, nbins)

	for i := range x {
		if keep != nil && !keep[i] {
			continue
		}
		if b := BinIndex(edges, x[i], closedLast); b >= 0 {
			sums[b] += y[i]
			counts[b]++
		}
	}

	for b := range sums {
		if counts[b] == 0 {
			sums[b] = math.NaN()
		} else {
			sums[b] /= float64(counts[b])
		}
	}
	return sums
}
