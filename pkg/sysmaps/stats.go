package sysmaps

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/hsc-lss/pkg/emath"
)

const DefaultNJackknife = 50

// SysStats is the mean relative galaxy density, binned by the value of
// a systematics map. All slices have one entry per bin.
type SysStats struct {
	Centers          []float64  // bin centers, in units of the map's mean
	CentersRescaled  []float64  // bin centers, in the map's own units
	Mean             []float64  // mean of n/<n> in the bin
	Err              []float64  // jackknife error on Mean
}

func (ss SysStats)String() string {
	str := ""
	for i := range ss.Mean {
		str += fmt.Sprintf("  [%2d] x=%10.4f (%12.4f)  n/<n>=%8.4f +- %8.4f\n",
			i, ss.Centers[i], ss.CentersRescaled[i], ss.Mean[i], ss.Err[i])
	}
	return str
}

// StatsOnSysmap measures how the galaxy density in dataMap varies with
// the observing condition (or contaminant) in sysMap, over the pixels
// where mask > 0.
//
// The density is normalized to an area-weighted mean of 1, and sysMap to
// its own mean over the same pixels. Pixels are then binned by the
// normalized sysMap value (see BinType), and the mean density taken in
// each bin. Errors come from njk jackknife resamplings, each dropping
// one contiguous block of len/njk selected pixels (so the last len%njk
// pixels are never dropped).
//
// Mismatched map lengths, empty bins and the like are not checked for;
// they come out as NaNs. njk=1 gives NaN errors, since the only
// resampling drops every pixel.
func StatsOnSysmap(sysMap, mask, dataMap []float64, nbins int, bt BinType, perc0 float64, njk int) (SysStats, error) {
	if err := bt.Validate(); err != nil {
		return SysStats{}, err
	}
	if njk < 1 {
		return SysStats{}, fmt.Errorf("need at least one jackknife block, got njk=%d", njk)
	}
	if nbins < 1 {
		return SysStats{Centers: []float64{}, CentersRescaled: []float64{}, Mean: []float64{}, Err: []float64{}}, nil
	}

	// Select the pixels in the binary mask
	inMask := make([]bool, len(mask))
	for i, m := range mask {
		inMask[i] = m > 0
	}
	sysSel := emath.SelectWhere(sysMap, inMask)
	dataSel := emath.SelectWhere(dataMap, inMask)
	maskSel := emath.SelectWhere(mask, inMask)
	n := len(sysSel)

	// Divide by the means
	sumMask, sumData := floats.Sum(maskSel), floats.Sum(dataSel)
	dataUse := make([]float64, n)
	for i := range dataUse {
		dataUse[i] = dataSel[i] * sumMask / (maskSel[i] * sumData)
	}
	sysMean := emath.Mean(sysSel)
	sysUse := make([]float64, n)
	for i := range sysUse {
		sysUse[i] = sysSel[i] / sysMean
	}

	edges, err := binEdges(sysUse, nbins, bt, perc0)
	if err != nil {
		return SysStats{}, err
	}

	ss := SysStats{
		Centers: binCenters(sysUse, edges, bt),
		Mean:    emath.BinnedMean(sysUse, dataUse, nil, edges, true),
		Err:     make([]float64, nbins),
	}
	ss.CentersRescaled = make([]float64, nbins)
	for i, c := range ss.Centers {
		ss.CentersRescaled[i] = c * sysMean
	}

	// Jackknife
	djk := n / njk
	means := make([][]float64, njk)
	keep := make([]bool, n)
	for j:=0; j<njk; j++ {
		for i := range keep {
			keep[i] = i < j*djk || i >= (j+1)*djk
		}
		means[j] = emath.BinnedMean(sysUse, dataUse, keep, edges, true)
	}

	col := make([]float64, njk)
	for b:=0; b<nbins; b++ {
		for j:=0; j<njk; j++ {
			col[j] = means[j][b]
		}
		ss.Err[b] = stat.PopStdDev(col, nil) * math.Sqrt(float64(njk) - 1.0)
	}

	return ss, nil
}

func binEdges(sysUse []float64, nbins int, bt BinType, perc0 float64) ([]float64, error) {
	lo, hi := math.NaN(), math.NaN()
	if len(sysUse) > 0 {
		lo, hi = floats.Min(sysUse), floats.Max(sysUse)
	}

	switch bt {
	case BinPercentiles:
		ps := make([]float64, nbins+1)
		for i := range ps {
			ps[i] = perc0 + (100.0-perc0) * float64(i) / float64(nbins)
		}
		return emath.Percentiles(sysUse, ps), nil

	case BinEqual:
		return emath.EqualEdges(lo, hi, nbins), nil

	case BinLog:
		if lo <= 0 {
			return nil, fmt.Errorf("log bins need a positive systematics map, min value is %g", lo)
		}
		return emath.LogEdges(lo, hi, nbins), nil
	}

	return nil, fmt.Errorf("bintype %d: %w", int(bt), ErrInvalidBinType)
}

// Percentile bins are centered on the mean of their members; equal-width
// bins on the midpoint, and log bins on the geometric midpoint.
func binCenters(sysUse, edges []float64, bt BinType) []float64 {
	nbins := len(edges) - 1
	centers := make([]float64, nbins)

	switch bt {
	case BinPercentiles:
		return emath.BinnedMean(sysUse, sysUse, nil, edges, true)
	case BinEqual:
		for i := range centers {
			centers[i] = 0.5*edges[i+1] + 0.5*edges[i]
		}
	case BinLog:
		for i := range centers {
			centers[i] = math.Sqrt(edges[i] * edges[i+1])
		}
	}
	return centers
}
