package flatmap

import(
	"fmt"
	"os"

	"github.com/astrogo/fitsio"
)

// A Writer builds a multi-HDU FITS file. The first HDU written must be
// a map; it becomes the primary HDU.
type Writer struct {
	Filename string
	file     *os.File
	fits     *fitsio.File
	nHDU     int
}

func Create(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("open+w '%s': %w", filename, err)
	}
	f, err := fitsio.Create(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("fits create '%s': %w", filename, err)
	}
	return &Writer{Filename: filename, file: file, fits: f}, nil
}

// WriteMap appends a float64 image of shape ny x nx, with the WCS and
// a DESCR card.
func (w *Writer)WriteMap(m FlatMap) error {
	if len(m.Values) != m.Npix() {
		return fmt.Errorf("'%s' map has %d pixels, want %d: %w", w.Filename, len(m.Values), m.Npix(), ErrShapeMismatch)
	}

	img := fitsio.NewImage(-64, []int{m.Nx, m.Ny})
	defer img.Close()

	cards := m.Cards()
	if m.Descr != "" {
		cards = append(cards, fitsio.Card{Name: "DESCR", Value: m.Descr, Comment: "Description"})
	}
	if err := img.Header().Append(cards...); err != nil {
		return fmt.Errorf("'%s' header: %w", w.Filename, err)
	}
	if err := img.Write(m.Values); err != nil {
		return fmt.Errorf("'%s' image data: %w", w.Filename, err)
	}
	return w.write(img)
}

// WriteTable appends a binary table; rows are pointers to structs
// whose fields carry `fits:"name"` tags matching cols.
func (w *Writer)WriteTable(name string, cols []fitsio.Column, rows []interface{}) error {
	if w.nHDU == 0 {
		return fmt.Errorf("'%s': first HDU must be a map", w.Filename)
	}

	tbl, err := fitsio.NewTable(name, cols, fitsio.BINARY_TBL)
	if err != nil {
		return fmt.Errorf("'%s' table %s: %w", w.Filename, name, err)
	}
	defer tbl.Close()

	for i, row := range rows {
		if err := tbl.Write(row); err != nil {
			return fmt.Errorf("'%s' table %s, row %d: %w", w.Filename, name, i, err)
		}
	}
	return w.write(tbl)
}

func (w *Writer)write(hdu fitsio.HDU) error {
	if err := w.fits.Write(hdu); err != nil {
		return fmt.Errorf("'%s' HDU #%d: %w", w.Filename, w.nHDU, err)
	}
	w.nHDU++
	return nil
}

func (w *Writer)Close() error {
	if err := w.fits.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("fits close '%s': %w", w.Filename, err)
	}
	return w.file.Close()
}

// WriteFlatMaps is a convenience for a file holding only maps
func WriteFlatMaps(filename string, maps ...FlatMap) error {
	w, err := Create(filename)
	if err != nil {
		return err
	}
	for _, m := range maps {
		if err := w.WriteMap(m); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
