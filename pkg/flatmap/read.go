package flatmap

import(
	"fmt"
	"math"
	"os"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/hsc-lss/pkg/emath"
)

// A FlatMap is a pixelization plus one value per pixel
type FlatMap struct {
	FlatMapInfo
	Values     []float64
	Descr      string  // the DESCR card, if any
}

// Grid views the values as an Nx x Ny grid, without copying
func (m FlatMap)Grid() (emath.FloatGrid, error) {
	return emath.NewFloatGridFrom(m.Values, m.Nx)
}

// ReadFlatMap loads the image in HDU number `ihdu` of a FITS file.
func ReadFlatMap(filename string, ihdu int) (FlatMap, error) {
	var m FlatMap
	err := withFITS(filename, func(f *fitsio.File) error {
		hdus := f.HDUs()
		if ihdu < 0 || ihdu >= len(hdus) {
			return fmt.Errorf("'%s' has %d HDUs, wanted #%d", filename, len(hdus), ihdu)
		}
		img, ok := hdus[ihdu].(fitsio.Image)
		if !ok {
			return fmt.Errorf("'%s' HDU #%d is not an image", filename, ihdu)
		}
		var err error
		m, err = FromImageHDU(img)
		if err != nil {
			return fmt.Errorf("'%s' HDU #%d: %w", filename, ihdu, err)
		}
		return nil
	})
	return m, err
}

// ReadFlatMaps loads every non-empty image HDU of a FITS file, e.g. the
// per-band maps of one observing condition.
func ReadFlatMaps(filename string) ([]FlatMap, error) {
	maps := []FlatMap{}
	err := withFITS(filename, func(f *fitsio.File) error {
		for i, hdu := range f.HDUs() {
			img, ok := hdu.(fitsio.Image)
			if !ok || len(img.Header().Axes()) == 0 {
				continue
			}
			m, err := FromImageHDU(img)
			if err != nil {
				return fmt.Errorf("'%s' HDU #%d: %w", filename, i, err)
			}
			maps = append(maps, m)
		}
		return nil
	})
	if err == nil && len(maps) == 0 {
		err = fmt.Errorf("'%s' holds no image maps", filename)
	}
	return maps, err
}

// CountHDUs returns how many HDUs a FITS file has
func CountHDUs(filename string) (int, error) {
	n := 0
	err := withFITS(filename, func(f *fitsio.File) error {
		n = len(f.HDUs())
		return nil
	})
	return n, err
}

func withFITS(filename string, fn func(*fitsio.File) error) error {
	r, err := os.Open(filename)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s doesn't exist: %w", filename, ErrMissingFile)
	} else if err != nil {
		return fmt.Errorf("open+r '%s': %w", filename, err)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return fmt.Errorf("fits parsing '%s': %w", filename, err)
	}
	defer f.Close()

	return fn(f)
}

// FromImageHDU converts a 2-D image HDU into a FlatMap. Pixel values
// are converted to float64 whatever the BITPIX.
func FromImageHDU(img fitsio.Image) (FlatMap, error) {
	hdr := img.Header()
	info, err := InfoFromHeader(hdr)
	if err != nil {
		return FlatMap{}, err
	}

	vals, err := readPixels(img, info.Npix())
	if err != nil {
		return FlatMap{}, err
	}

	m := FlatMap{FlatMapInfo: info, Values: vals}
	if c := hdr.Get("DESCR"); c != nil {
		m.Descr, _ = c.Value.(string)
	}
	return m, nil
}

func readPixels(img fitsio.Image, n int) ([]float64, error) {
	out := make([]float64, n)

	switch bitpix := img.Header().Bitpix(); bitpix {
	case -64:
		data := make([]float64, n)
		if err := img.Read(&data); err != nil { return nil, err }
		copy(out, data)
	case -32:
		data := make([]float32, n)
		if err := img.Read(&data); err != nil { return nil, err }
		for i, v := range data { out[i] = float64(v) }
	case 64:
		data := make([]int64, n)
		if err := img.Read(&data); err != nil { return nil, err }
		for i, v := range data { out[i] = float64(v) }
	case 32:
		data := make([]int32, n)
		if err := img.Read(&data); err != nil { return nil, err }
		for i, v := range data { out[i] = float64(v) }
	case 16:
		data := make([]int16, n)
		if err := img.Read(&data); err != nil { return nil, err }
		for i, v := range data { out[i] = float64(v) }
	case 8:
		data := make([]byte, n)
		if err := img.Read(&data); err != nil { return nil, err }
		for i, v := range data { out[i] = float64(v) }
	default:
		return nil, fmt.Errorf("unhandled BITPIX %d", bitpix)
	}

	return out, nil
}

// NaNToZero replaces NaNs in place, returning the slice
func NaNToZero(vals []float64) []float64 {
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = 0
		}
	}
	return vals
}
