package maskplot

import(
	"fmt"
	"image"
	"log"

	"github.com/fogleman/gg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/abworrall/hsc-lss/pkg/ecolor"
	"github.com/abworrall/hsc-lss/pkg/flatmap"
)

// Pixels with at least this masked fraction count as unmasked
const MaskedFractionThreshold = 0.5

// An Overlay is the sum of a binarized masked fraction map and a
// systematics mask: 0 masked by both, 1 by one, 2 by neither.
type Overlay struct {
	flatmap.FlatMap
	Field  string
}

func NewOverlay(field string, mskfrac, systMask flatmap.FlatMap) (Overlay, error) {
	if err := flatmap.CompareInfos(mskfrac.FlatMapInfo, systMask.FlatMapInfo); err != nil {
		return Overlay{}, err
	}

	o := Overlay{Field: field, FlatMap: flatmap.FlatMap{FlatMapInfo: mskfrac.FlatMapInfo, Descr: field}}
	o.Values = make([]float64, mskfrac.Npix())
	for i := range o.Values {
		if mskfrac.Values[i] >= MaskedFractionThreshold {
			o.Values[i] = 1
		}
		o.Values[i] += systMask.Values[i]
	}
	return o, nil
}

// LoadOverlay reads both maps from their first HDUs
func LoadOverlay(field, mskfracFile, systMaskFile string) (Overlay, error) {
	mskfrac, err := flatmap.ReadFlatMap(mskfracFile, 0)
	if err != nil {
		return Overlay{}, err
	}
	systMask, err := flatmap.ReadFlatMap(systMaskFile, 0)
	if err != nil {
		return Overlay{}, err
	}
	return NewOverlay(field, mskfrac, systMask)
}

// Dims, Z, X, Y implement plotter.GridXYZ. Columns run in increasing RA
// whichever way the WCS runs; row 0 is the bottom of the map.
func (o Overlay)Dims() (int, int) { return o.Nx, o.Ny }
func (o Overlay)Z(c, r int) float64 { return o.Values[r*o.Nx + o.col2ix(c)] }
func (o Overlay)X(c int) float64 {
	ra, _ := o.pixToWorld(float64(o.col2ix(c)), 0)
	return ra
}
func (o Overlay)Y(r int) float64 {
	_, dec := o.pixToWorld(0, float64(r))
	return dec
}

func (o Overlay)col2ix(c int) int {
	if o.Cdelt[0] < 0 {
		return o.Nx - 1 - c
	}
	return c
}

// pixToWorld maps 0-based pixel coords back to (ra,dec)
func (o Overlay)pixToWorld(x, y float64) (float64, float64) {
	inv, err := o.WorldToPix().Invert()
	if err != nil {
		return x, y
	}
	return inv.Apply(x, y)
}

// WritePlot renders the overlay to a PDF (or png/svg, going by the
// filename's extension), on a fixed 0..2 colour scale.
func (o Overlay)WritePlot(filename string) error {
	p := plot.New()
	p.Title.Text = o.Field
	p.X.Label.Text = "R.A."
	p.Y.Label.Text = "Dec."

	hm := plotter.NewHeatMap(o, ecolor.Viridis(3))
	hm.Min = 0
	hm.Max = 2
	p.Add(hm)

	aspect := float64(o.Ny) / float64(o.Nx)
	width := 6*vg.Inch
	if err := p.Save(width, vg.Length(aspect)*width + vg.Inch, filename); err != nil {
		return fmt.Errorf("plot '%s': %w", filename, err)
	}
	log.Printf("Mask overlay for %s written to '%s'", o.Field, filename)
	return nil
}

// WriteQuickLook saves a PNG of the overlay, one image pixel per map
// pixel, in the same colours as the plot.
func (o Overlay)WriteQuickLook(filename string) error {
	cm := ecolor.Viridis(3)
	img := image.NewRGBA(image.Rect(0, 0, o.Nx, o.Ny))
	for iy:=0; iy<o.Ny; iy++ {
		for ix:=0; ix<o.Nx; ix++ {
			img.Set(ix, o.Ny-1-iy, cm.At(o.Values[iy*o.Nx + ix] / 2))
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(o.Field, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save '%s': %w", filename, err)
	}
	return nil
}
