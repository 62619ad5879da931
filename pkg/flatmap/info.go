package flatmap

import(
	"errors"
	"fmt"
	"math"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/hsc-lss/pkg/emath"
)

var(
	ErrMissingFile   = errors.New("missing file")
	ErrShapeMismatch = errors.New("map doesn't conform to this pixelization")
)

// A Wcs is the linear (plate carree) world coordinate system of a flat
// map; one entry per axis, in FITS conventions (CRPIX is 1-based).
type Wcs struct {
	Ctype  [2]string
	Crpix  [2]float64
	Crval  [2]float64
	Cdelt  [2]float64
}

// FlatMapInfo describes a flat-sky pixelization: an Nx*Ny grid of
// rectangular pixels, Dx*Dy degrees each. Pixel (ix,iy) lives at
// index iy*Nx + ix.
type FlatMapInfo struct {
	Nx, Ny  int
	Dx, Dy  float64  // degrees
	Wcs
}

func NewFlatMapInfo(wcs Wcs, nx, ny int) FlatMapInfo {
	return FlatMapInfo{
		Nx: nx,
		Ny: ny,
		Dx: math.Abs(wcs.Cdelt[0]),
		Dy: math.Abs(wcs.Cdelt[1]),
		Wcs: wcs,
	}
}

func (fi FlatMapInfo)Npix() int       { return fi.Nx * fi.Ny }
func (fi FlatMapInfo)Lx() float64     { return float64(fi.Nx) * fi.Dx }
func (fi FlatMapInfo)Ly() float64     { return float64(fi.Ny) * fi.Dy }

func (fi FlatMapInfo)String() string {
	return fmt.Sprintf("FlatMapInfo[%dx%d, %.4fx%.4f deg/pix, center (%.3f,%.3f)]",
		fi.Nx, fi.Ny, fi.Dx, fi.Dy, fi.Crval[0], fi.Crval[1])
}

// WorldToPix maps (ra,dec) in degrees to 0-based fractional pixel coords.
func (fi FlatMapInfo)WorldToPix() emath.Aff3 {
	// Remember they compose back to front - rightmost operations performed first
	return emath.Identity().
		Translate(fi.Crpix[0]-1, fi.Crpix[1]-1).
		Scale(1/fi.Cdelt[0], 1/fi.Cdelt[1]).
		Translate(-fi.Crval[0], -fi.Crval[1])
}

// Pos2Pix returns the pixel index holding (ra,dec), or -1 if it falls
// outside the map.
func (fi FlatMapInfo)Pos2Pix(ra, dec float64) int {
	px, py := fi.WorldToPix().Apply(ra, dec)
	ix := int(math.Floor(px + 0.5))
	iy := int(math.Floor(py + 0.5))
	if ix < 0 || ix >= fi.Nx || iy < 0 || iy >= fi.Ny || math.IsNaN(px) || math.IsNaN(py) {
		return -1
	}
	return iy*fi.Nx + ix
}

// Pix2Pos returns the sky position of a pixel's center.
func (fi FlatMapInfo)Pix2Pos(ipix int) (float64, float64, error) {
	if ipix < 0 || ipix >= fi.Npix() {
		return 0, 0, fmt.Errorf("pixel %d outside %s", ipix, fi)
	}
	inv, err := fi.WorldToPix().Invert()
	if err != nil {
		return 0, 0, err
	}
	ra, dec := inv.Apply(float64(ipix % fi.Nx), float64(ipix / fi.Nx))
	return ra, dec, nil
}

// CompareInfos fails if two pixelizations differ.
func CompareInfos(a, b FlatMapInfo) error {
	const tol = 1e-9
	near := func(x, y float64) bool { return math.Abs(x-y) <= tol*math.Max(1, math.Abs(x)) }

	if a.Nx != b.Nx || a.Ny != b.Ny {
		return fmt.Errorf("pixelizations differ in size: %dx%d vs %dx%d", a.Nx, a.Ny, b.Nx, b.Ny)
	}
	for i:=0; i<2; i++ {
		if !near(a.Crpix[i], b.Crpix[i]) || !near(a.Crval[i], b.Crval[i]) || !near(a.Cdelt[i], b.Cdelt[i]) {
			return fmt.Errorf("pixelizations differ in WCS axis %d: %s vs %s", i+1, a, b)
		}
	}
	return nil
}

// Cards renders the WCS as FITS header cards
func (fi FlatMapInfo)Cards() []fitsio.Card {
	return []fitsio.Card{
		{Name: "CTYPE1", Value: fi.Ctype[0]},
		{Name: "CTYPE2", Value: fi.Ctype[1]},
		{Name: "CRPIX1", Value: fi.Crpix[0]},
		{Name: "CRPIX2", Value: fi.Crpix[1]},
		{Name: "CRVAL1", Value: fi.Crval[0]},
		{Name: "CRVAL2", Value: fi.Crval[1]},
		{Name: "CDELT1", Value: fi.Cdelt[0]},
		{Name: "CDELT2", Value: fi.Cdelt[1]},
	}
}

// InfoFromHeader reads the pixelization out of an image HDU header
func InfoFromHeader(hdr *fitsio.Header) (FlatMapInfo, error) {
	axes := hdr.Axes()
	if len(axes) != 2 {
		return FlatMapInfo{}, fmt.Errorf("flat maps are 2-D, header has %d axes", len(axes))
	}

	wcs := Wcs{Ctype: [2]string{"RA---CAR", "DEC--CAR"}}
	for i:=0; i<2; i++ {
		n := i+1
		if c := hdr.Get(fmt.Sprintf("CTYPE%d", n)); c != nil {
			if s, ok := c.Value.(string); ok {
				wcs.Ctype[i] = s
			}
		}
		for _, kv := range []struct{key string; dst *float64; def float64}{
			{"CRPIX", &wcs.Crpix[i], 1},
			{"CRVAL", &wcs.Crval[i], 0},
			{"CDELT", &wcs.Cdelt[i], 1},
		} {
			*kv.dst = kv.def
			if c := hdr.Get(fmt.Sprintf("%s%d", kv.key, n)); c != nil {
				v, err := cardFloat(c)
				if err != nil {
					return FlatMapInfo{}, err
				}
				*kv.dst = v
			}
		}
	}

	if wcs.Cdelt[0] == 0 || wcs.Cdelt[1] == 0 {
		return FlatMapInfo{}, fmt.Errorf("header has zero CDELT: %v", wcs.Cdelt)
	}

	return NewFlatMapInfo(wcs, axes[0], axes[1]), nil
}

func cardFloat(c *fitsio.Card) (float64, error) {
	switch v := c.Value.(type) {
	case float64: return v, nil
	case float32: return float64(v), nil
	case int:     return float64(v), nil
	case int64:   return float64(v), nil
	case int32:   return float64(v), nil
	default:
		return 0, fmt.Errorf("card %s: can't use %T as a number", c.Name, c.Value)
	}
}
