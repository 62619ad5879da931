package pzbins

import(
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WritePlot draws the stacked N(z) (scaled to unit integral, so it sits
// on the same axis) and the per-bin dn/dz of the finest binning.
func (as AlgSummary)WritePlot(filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("From %s PDF Stacking", as.Alg)
	p.X.Label.Text = "z"
	p.Y.Label.Text = "N(z)"

	total := append([]float64{}, as.StackedNz...)
	args := []interface{}{"all", xys(as.Z, normalize(as.Z, total))}
	if n := len(as.Binnings); n > 0 {
		for i, bin := range as.Binnings[n-1].Bins {
			args = append(args, fmt.Sprintf("bin %d", i+1), xys(as.Z, bin.DnDz))
		}
	}

	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("plot '%s': %w", filename, err)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func xys(x, y []float64) plotter.XYs {
	pts := plotter.XYs{}
	for i := range x {
		if bad(x[i]) || bad(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

func bad(f float64) bool { return math.IsNaN(f) || math.IsInf(f, 0) }
