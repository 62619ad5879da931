package emath

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentiles(t *testing.T) {
	vals := []float64{4, 1, 3, 2, 5}

	assert.Equal(t, 1.0, Percentile(vals, 0))
	assert.Equal(t, 5.0, Percentile(vals, 100))
	assert.Equal(t, 3.0, Percentile(vals, 50))
	assert.InDelta(t, 1.4, Percentile(vals, 10), 1e-12)

	got := Percentiles([]float64{10, 20}, []float64{0, 25, 50, 100})
	assert.InDeltaSlice(t, []float64{10, 12.5, 15, 20}, got, 1e-12)

	// Input is left unsorted
	assert.Equal(t, []float64{4, 1, 3, 2, 5}, vals)

	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.True(t, math.IsNaN(Mean([]float64{})))
}

func TestEqualEdges(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, EqualEdges(0, 1, 4), 1e-12)
	assert.InDeltaSlice(t, []float64{1.5, 2.5}, EqualEdges(2, 2, 1), 1e-12)
}

func TestLogEdges(t *testing.T) {
	edges := LogEdges(1, 100, 2)
	require.Len(t, edges, 3)
	assert.InDelta(t, 1.0, edges[0], 1e-9)
	assert.InDelta(t, 10.0, edges[1], 1e-9)
	assert.InDelta(t, 100.0, edges[2], 1e-9)
}

func TestBinIndex(t *testing.T) {
	edges := []float64{0, 1, 2, 3}

	tests := []struct{
		v          float64
		closedLast bool
		want       int
	}{
		{0, false, 0},
		{0.5, false, 0},
		{1, false, 1},
		{2.999, false, 2},
		{3, false, -1},
		{3, true, 2},
		{-0.1, true, -1},
		{3.1, true, -1},
		{math.NaN(), true, -1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BinIndex(edges, tc.v, tc.closedLast), "v=%v closed=%v", tc.v, tc.closedLast)
	}

	assert.Equal(t, -1, BinIndex([]float64{1}, 1, true))
}

func TestBinnedMean(t *testing.T) {
	x := []float64{0.1, 0.2, 1.5, 2.0, 5}
	y := []float64{1, 3, 10, 7, 100}
	edges := []float64{0, 1, 2}

	got := BinnedMean(x, y, nil, edges, true)
	require.Len(t, got, 2)
	assert.InDelta(t, 2.0, got[0], 1e-12)
	assert.InDelta(t, 8.5, got[1], 1e-12)

	// Skipping both members of the first bin leaves it empty
	got = BinnedMean(x, y, []bool{false, false, true, true, true}, edges, true)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 8.5, got[1], 1e-12)

	// With the last bin open, x=2 falls outside
	got = BinnedMean(x, y, nil, edges, false)
	assert.InDelta(t, 10.0, got[1], 1e-12)
}

func TestSelectWhere(t *testing.T) {
	assert.Equal(t, []float64{1, 3}, SelectWhere([]float64{1, 2, 3}, []bool{true, false, true}))
	assert.Empty(t, SelectWhere([]float64{1}, []bool{false}))
}
