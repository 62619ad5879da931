package sampler

import(
	"math"

	"go-hep.org/x/hep/hbook"
)

const(
	NzBins = 50
	NzZMin = 0.0
	NzZMax = 4.0
)

// An Nz is a redshift histogram; row i covers [Zi[i], Zf[i]).
type Nz struct {
	Zi, Zf, N []float64
}

// NzRow is one row of the N(z) binary table
type NzRow struct {
	Zi float32 `fits:"z_i"`
	Zf float32 `fits:"z_f"`
	N  float32 `fits:"n_z"`
}

// NewNz histograms redshifts into NzBins bins over [NzZMin, NzZMax]. As
// with numpy, the top edge is inside the last bin and anything outside
// the range (or NaN) is dropped.
func NewNz(zs []float64) Nz {
	h := hbook.NewH1D(NzBins, NzZMin, NzZMax)
	for _, z := range zs {
		if math.IsNaN(z) {
			continue
		}
		if z == NzZMax {
			z = math.Nextafter(NzZMax, NzZMin)
		}
		h.Fill(z, 1)
	}

	nz := Nz{}
	for _, bin := range h.Binning.Bins {
		nz.Zi = append(nz.Zi, bin.Range.Min)
		nz.Zf = append(nz.Zf, bin.Range.Max)
		nz.N = append(nz.N, bin.SumW())
	}
	return nz
}

func (nz Nz)Total() float64 {
	tot := 0.0
	for _, n := range nz.N { tot += n }
	return tot
}

func (nz Nz)Rows() []interface{} {
	rows := make([]interface{}, len(nz.N))
	for i := range nz.N {
		rows[i] = &NzRow{Zi: float32(nz.Zi[i]), Zf: float32(nz.Zf[i]), N: float32(nz.N[i])}
	}
	return rows
}
