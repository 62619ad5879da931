package pzbins

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/abworrall/hsc-lss/pkg/emath"
	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

// MatchedPDFs are per-object photo-z PDFs, all sampled on the same
// redshift grid Z.
type MatchedPDFs struct {
	IDs   []int64
	PDFs  [][]float64
	Z     []float64
	index map[int64]int
}

// ReadMatchedPDFs loads HDU1 (object_id, pdf) and HDU2 (bins).
func ReadMatchedPDFs(filename string) (MatchedPDFs, error) {
	mp := MatchedPDFs{}
	var err error

	if mp.IDs, err = hsccat.ReadIDColumn(filename, 1, hsccat.ColObjectID); err != nil {
		return mp, err
	}
	cols, err := hsccat.ReadArrayColumns(filename, 1, "pdf")
	if err != nil {
		return mp, err
	}
	mp.PDFs = cols["pdf"]

	zcols, err := hsccat.ReadArrayColumns(filename, 2, "bins")
	if err != nil {
		return mp, err
	}
	for _, row := range zcols["bins"] {
		mp.Z = append(mp.Z, row...)
	}

	for i, pdf := range mp.PDFs {
		if len(pdf) != len(mp.Z) {
			return mp, fmt.Errorf("'%s' row %d: PDF has %d samples, z grid has %d", filename, i, len(pdf), len(mp.Z))
		}
	}

	mp.index = make(map[int64]int, len(mp.IDs))
	for i, id := range mp.IDs {
		mp.index[id] = i
	}
	return mp, nil
}

// Stack sums the PDFs of the given rows (all rows if nil)
func (mp MatchedPDFs)Stack(rows []int) []float64 {
	nz := make([]float64, len(mp.Z))
	if rows == nil {
		for _, pdf := range mp.PDFs {
			floats.Add(nz, pdf)
		}
		return nz
	}
	for _, i := range rows {
		floats.Add(nz, mp.PDFs[i])
	}
	return nz
}

// Lookup returns the PDF row of an object id
func (mp MatchedPDFs)Lookup(id int64) (int, bool) {
	i, ok := mp.index[id]
	return i, ok
}

// EqualCountEdges picks nbin+1 edges so each bin holds about the same
// number of the (finite) redshifts.
func EqualCountEdges(zs []float64, nbin int) []float64 {
	finite := []float64{}
	for _, z := range zs {
		if !math.IsNaN(z) && !math.IsInf(z, 0) {
			finite = append(finite, z)
		}
	}

	ps := make([]float64, nbin+1)
	for i := range ps {
		ps[i] = 100.0 * float64(i) / float64(nbin)
	}
	return emath.Percentiles(finite, ps)
}

// A Bin is one tomographic bin of a Binning
type Bin struct {
	ZLo, ZHi   float64
	NGal       int        // objects whose point estimate lands in the bin
	NMatched   int        // of those, how many have a PDF
	Density    float64    // objects per steradian
	ShotNoise  float64    // 1/Density
	DnDz       []float64  `yaml:",flow"`  // stacked PDFs, unit integral over z
}

type Binning struct {
	NBin    int
	Edges   []float64  `yaml:",flow"`
	Bins    []Bin
}

// MakeBinning splits the catalog into nbin equal-count bins on zphot,
// and builds each bin's dn/dz by stacking the matched PDFs.
func MakeBinning(nbin int, zphot []float64, ids []int64, mp MatchedPDFs, areaSr float64) Binning {
	b := Binning{NBin: nbin, Edges: EqualCountEdges(zphot, nbin)}

	members := make([][]int, nbin)
	ngal := make([]int, nbin)
	for i, z := range zphot {
		ibin := emath.BinIndex(b.Edges, z, true)
		if ibin < 0 {
			continue
		}
		ngal[ibin]++
		if row, ok := mp.Lookup(ids[i]); ok {
			members[ibin] = append(members[ibin], row)
		}
	}

	for i:=0; i<nbin; i++ {
		bin := Bin{
			ZLo:      b.Edges[i],
			ZHi:      b.Edges[i+1],
			NGal:     ngal[i],
			NMatched: len(members[i]),
			Density:  float64(ngal[i]) / areaSr,
			DnDz:     normalize(mp.Z, mp.Stack(members[i])),
		}
		bin.ShotNoise = 1.0 / bin.Density
		b.Bins = append(b.Bins, bin)
	}
	return b
}

// normalize scales f so it integrates to one over x; zero stays zero.
func normalize(x, f []float64) []float64 {
	if len(x) < 2 {
		return f
	}
	norm := integrate.Trapezoidal(x, f)
	if norm == 0 {
		return f
	}
	floats.Scale(1/norm, f)
	return f
}
