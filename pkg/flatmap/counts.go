package flatmap

import(
	"fmt"

	"github.com/skypies/util/histogram"
)

// CountsMap bins objects by sky position into the pixelization. Objects
// outside the map are dropped.
func CountsMap(ra, dec []float64, info FlatMapInfo) (FlatMap, error) {
	if len(ra) != len(dec) {
		return FlatMap{}, fmt.Errorf("CountsMap: %d RAs but %d Decs", len(ra), len(dec))
	}

	m := FlatMap{FlatMapInfo: info, Values: make([]float64, info.Npix())}
	for i := range ra {
		if ipix := info.Pos2Pix(ra[i], dec[i]); ipix >= 0 {
			m.Values[ipix]++
		}
	}
	return m, nil
}

// CountsHistogram summarizes how many objects land in each pixel, for
// the verbose logs.
func CountsHistogram(m FlatMap) *histogram.Histogram {
	h := histogram.Histogram{NumBuckets:32, ValMin:0, ValMax:32}
	for _, v := range m.Values {
		h.Add(histogram.ScalarVal(int(v)))
	}
	return &h
}
