package sysmaps

import(
	"fmt"
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// WriteArchive stores a SysResult as a compressed numpy .npz archive,
// with one (sub-maps x bins) array per key:
//   x           bin centers in the map's own units
//   x_rescaled  bin centers in units of the map's mean
//   mean        mean relative density
//   error       jackknife error
func WriteArchive(filename string, sr SysResult) error {
	arrays := []struct{
		name string
		m    *mat.Dense
	}{
		{"x",          sr.Stack(FieldCentersRescaled)},
		{"x_rescaled", sr.Stack(FieldCenters)},
		{"mean",       sr.Stack(FieldMean)},
		{"error",      sr.Stack(FieldErr)},
	}
	if arrays[0].m == nil {
		return fmt.Errorf("archive '%s': no sub-maps in %s", filename, sr.Name)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}

	zw := zip.NewWriter(f)
	for _, a := range arrays {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: a.name + ".npy", Method: zip.Deflate})
		if err != nil {
			f.Close()
			return fmt.Errorf("archive '%s' entry %s: %w", filename, a.name, err)
		}
		if err := npyio.Write(w, a.m); err != nil {
			f.Close()
			return fmt.Errorf("archive '%s' entry %s: %w", filename, a.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("archive '%s': %w", filename, err)
	}
	return f.Close()
}

// ReadArchive reads back one array of an archive written by WriteArchive
func ReadArchive(filename, name string) (*mat.Dense, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %w", filename, err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if zf.Name != name + ".npy" {
			continue
		}
		r, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("archive '%s' entry %s: %w", filename, name, err)
		}
		defer r.Close()

		var m mat.Dense
		if err := npyio.Read(r, &m); err != nil {
			return nil, fmt.Errorf("archive '%s' entry %s: %w", filename, name, err)
		}
		return &m, nil
	}
	return nil, fmt.Errorf("archive '%s' has no entry %s", filename, name)
}
