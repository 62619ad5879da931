package sysmaps

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(i+1)
	}
	return v
}

func constant(n int, c float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = c
	}
	return v
}

func TestStatsUniformDensity(t *testing.T) {
	sys := ramp(100)
	ss, err := StatsOnSysmap(sys, constant(100, 1), constant(100, 3), 5, BinEqual, 0, 10)
	require.NoError(t, err)

	require.Len(t, ss.Mean, 5)
	for i := range ss.Mean {
		assert.InDelta(t, 1.0, ss.Mean[i], 1e-12, "bin %d", i)
		assert.InDelta(t, 0.0, ss.Err[i], 1e-12, "bin %d", i)
	}

	// Equal bins over [1,100] in map units, centered on their midpoints
	assert.InDelta(t, 10.9, ss.CentersRescaled[0], 1e-9)
	assert.InDelta(t, 90.1, ss.CentersRescaled[4], 1e-9)
	assert.InDelta(t, 10.9/50.5, ss.Centers[0], 1e-9)
}

func TestStatsJackknifeError(t *testing.T) {
	// One bin and one pixel per jackknife block: n/<n> is {.5,.5,1.5,1.5},
	// and the error works out to its std / sqrt(3).
	ss, err := StatsOnSysmap(ramp(4), constant(4, 1), []float64{1, 1, 3, 3}, 1, BinEqual, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ss.Mean[0], 1e-12)
	assert.InDelta(t, 0.5/math.Sqrt(3), ss.Err[0], 1e-12)
}

func TestStatsMaskWeights(t *testing.T) {
	// A half-masked pixel with half the galaxies has the same density
	mask := []float64{1, 0.5, 0, 1}
	data := []float64{2, 1, 100, 2}
	ss, err := StatsOnSysmap([]float64{1, 1, 1, 1}, mask, data, 1, BinEqual, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ss.Mean[0], 1e-12)
}

func TestStatsSinglePixel(t *testing.T) {
	mask := []float64{0, 0, 1, 0}
	ss, err := StatsOnSysmap([]float64{5, 6, 7, 8}, mask, []float64{1, 1, 4, 1}, 3, BinEqual, 0, 1)
	require.NoError(t, err)

	// The degenerate range is widened to [0.5,1.5]; the pixel sits in the middle bin
	assert.True(t, math.IsNaN(ss.Mean[0]))
	assert.InDelta(t, 1.0, ss.Mean[1], 1e-12)
	assert.True(t, math.IsNaN(ss.Mean[2]))
	assert.InDelta(t, 7.0, ss.CentersRescaled[1], 1e-12)

	// njk=1 drops every pixel
	for i := range ss.Err {
		assert.True(t, math.IsNaN(ss.Err[i]))
	}
}

func TestStatsPercentileBins(t *testing.T) {
	sys := ramp(60)
	ss, err := StatsOnSysmap(sys, constant(60, 1), constant(60, 1), 6, BinPercentiles, 0, 6)
	require.NoError(t, err)

	for i := range ss.Mean {
		assert.False(t, math.IsNaN(ss.Mean[i]), "bin %d is empty", i)
		if i > 0 {
			assert.Greater(t, ss.Centers[i], ss.Centers[i-1])
		}
	}

	// The top pixel is in the closed last bin: its center is the mean of 51..60
	assert.InDelta(t, 55.5, ss.CentersRescaled[5], 1e-9)
}

func TestStatsPercentileTrim(t *testing.T) {
	sys := ramp(100)
	ss, err := StatsOnSysmap(sys, constant(100, 1), constant(100, 1), 2, BinPercentiles, 10, 5)
	require.NoError(t, err)

	// Edges run from the 10th percentile, so 1..10 are left out
	assert.InDelta(t, 33.0, ss.CentersRescaled[0], 1e-9)
}

func TestStatsLogBins(t *testing.T) {
	sys := []float64{1, 5, 50, 1000}
	ss, err := StatsOnSysmap(sys, constant(4, 1), constant(4, 1), 3, BinLog, 0, 2)
	require.NoError(t, err)
	require.Len(t, ss.Centers, 3)
	for i := range ss.Mean {
		assert.InDelta(t, 1.0, ss.Mean[i], 1e-12)
	}
	// Geometric midpoints of 1..10, 10..100, 100..1000 (map units)
	assert.InDelta(t, math.Sqrt(10), ss.CentersRescaled[0], 1e-9)
	assert.InDelta(t, math.Sqrt(10)*100, ss.CentersRescaled[2], 1e-9)

	_, err = StatsOnSysmap([]float64{-1, 1, 2, 3}, constant(4, 1), constant(4, 1), 3, BinLog, 0, 2)
	assert.Error(t, err)
}

func TestStatsErrors(t *testing.T) {
	_, err := StatsOnSysmap(ramp(4), constant(4, 1), constant(4, 1), 2, BinType(7), 0, 2)
	assert.ErrorIs(t, err, ErrInvalidBinType)

	_, err = StatsOnSysmap(ramp(4), constant(4, 1), constant(4, 1), 2, BinEqual, 0, 0)
	assert.Error(t, err)

	ss, err := StatsOnSysmap(ramp(4), constant(4, 1), constant(4, 1), 0, BinEqual, 0, 2)
	require.NoError(t, err)
	assert.Empty(t, ss.Mean)
}

func TestParseBinType(t *testing.T) {
	for _, name := range []string{"percentiles", "equal", "log"} {
		bt, err := ParseBinType(name)
		require.NoError(t, err)
		assert.Equal(t, name, bt.String())
	}
	_, err := ParseBinType("quantiles")
	assert.ErrorIs(t, err, ErrInvalidBinType)
}
