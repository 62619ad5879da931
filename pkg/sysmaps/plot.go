package sysmaps

import(
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

const densityLabel = "n / <n>"

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// finitePoints drops bins where any of x, mean or err is NaN/Inf; the
// plotters refuse those.
func finitePoints(x, y, yerr []float64) errorPoints {
	ep := errorPoints{}
	for i := range x {
		if bad(x[i]) || bad(y[i]) || bad(yerr[i]) {
			continue
		}
		ep.XYs = append(ep.XYs, plotter.XY{X: x[i], Y: y[i]})
		ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{yerr[i], yerr[i]})
	}
	return ep
}

func bad(f float64) bool { return math.IsNaN(f) || math.IsInf(f, 0) }

// statsPlot draws one errorbar panel; the x axis is the systematic in
// units of its mean.
func statsPlot(ss SysStats, title, xlabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = densityLabel

	pts := finitePoints(ss.Centers, ss.Mean, ss.Err)
	if len(pts.XYs) == 0 {
		return p, nil // nothing plottable, leave the panel empty
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.RingGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)

	e, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, err
	}
	e.LineStyle.Color = color.Black

	p.Add(e, scatter, plotter.NewGrid())
	return p, nil
}

// WritePlot saves a PDF of density vs. systematic; a single panel when
// there is one sub-map, else one stacked panel per band.
func WritePlot(filename string, sr SysResult, xlabel string, bands []string) error {
	if sr.NumMaps() == 0 {
		return fmt.Errorf("plot '%s': no sub-maps in %s", filename, sr.Name)
	}
	if sr.NumMaps() == 1 {
		p, err := statsPlot(sr.Bands[0], "", xlabel)
		if err != nil {
			return fmt.Errorf("plot '%s': %w", filename, err)
		}
		return p.Save(5*vg.Inch, 4*vg.Inch, filename)
	}

	plots := make([][]*plot.Plot, sr.NumMaps())
	for i, ss := range sr.Bands {
		title := fmt.Sprintf("sub-map %d", i)
		if i < len(bands) {
			title = bands[i] + "-band"
		}
		label := ""
		if i == sr.NumMaps()-1 {
			label = xlabel
		}
		p, err := statsPlot(ss, title, label)
		if err != nil {
			return fmt.Errorf("plot '%s' panel %d: %w", filename, i, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgpdf.New(5*vg.Inch, vg.Length(4*sr.NumMaps())*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: sr.NumMaps(), Cols: 1, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plot '%s': %w", filename, err)
	}
	return f.Close()
}
