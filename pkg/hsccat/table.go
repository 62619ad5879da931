package hsccat

import(
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/hsc-lss/pkg/flatmap"
)

var(
	ErrMissingFile   = flatmap.ErrMissingFile
	ErrMissingColumn = errors.New("missing column")
)

// ReadColumns loads the named scalar columns of the binary table in HDU
// `ihdu`. Boolean and integer columns are returned as 0/1 and plain
// numbers.
func ReadColumns(filename string, ihdu int, names ...string) (map[string][]float64, error) {
	cols := map[string][]float64{}
	err := scanTable(filename, ihdu, names, func(row map[string]interface{}) error {
		for _, name := range names {
			v, err := toFloat64(row[name])
			if err != nil {
				return fmt.Errorf("column %s: %w", name, err)
			}
			cols[name] = append(cols[name], v)
		}
		return nil
	})
	return cols, err
}

// ReadIDColumn loads an integer column without going through float64,
// which can't hold 64-bit object ids exactly.
func ReadIDColumn(filename string, ihdu int, name string) ([]int64, error) {
	ids := []int64{}
	err := scanTable(filename, ihdu, []string{name}, func(row map[string]interface{}) error {
		rv := reflect.ValueOf(row[name])
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ids = append(ids, rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			ids = append(ids, int64(rv.Uint()))
		default:
			return fmt.Errorf("column %s: %T is not an integer", name, row[name])
		}
		return nil
	})
	return ids, err
}

// ReadArrayColumns loads columns whose cells are fixed-size vectors
// (e.g. binned PDFs). Scalar cells come back as 1-element vectors.
func ReadArrayColumns(filename string, ihdu int, names ...string) (map[string][][]float64, error) {
	cols := map[string][][]float64{}
	err := scanTable(filename, ihdu, names, func(row map[string]interface{}) error {
		for _, name := range names {
			v, err := toFloat64s(row[name])
			if err != nil {
				return fmt.Errorf("column %s: %w", name, err)
			}
			cols[name] = append(cols[name], v)
		}
		return nil
	})
	return cols, err
}

func scanTable(filename string, ihdu int, names []string, fn func(map[string]interface{}) error) error {
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

	hdus := f.HDUs()
	if ihdu < 0 || ihdu >= len(hdus) {
		return fmt.Errorf("'%s' has %d HDUs, wanted #%d", filename, len(hdus), ihdu)
	}
	tbl, ok := hdus[ihdu].(*fitsio.Table)
	if !ok {
		return fmt.Errorf("'%s' HDU #%d is not a table", filename, ihdu)
	}
	for _, name := range names {
		if tbl.Index(name) < 0 {
			return fmt.Errorf("'%s' HDU #%d has no column '%s': %w", filename, ihdu, name, ErrMissingColumn)
		}
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return fmt.Errorf("'%s' read rows: %w", filename, err)
	}
	defer rows.Close()

	for rows.Next() {
		row := map[string]interface{}{}
		for _, name := range names {
			row[name] = nil // only scan the columns we asked for
		}
		if err := rows.Scan(&row); err != nil {
			return fmt.Errorf("'%s' scan: %w", filename, err)
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("'%s': %w", filename, err)
		}
	}
	return rows.Err()
}

func toFloat64(v interface{}) (float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Bool:
		if rv.Bool() { return 1, nil }
		return 0, nil
	case reflect.Slice, reflect.Array:
		if rv.Len() == 1 {
			return toFloat64(rv.Index(0).Interface())
		}
	}
	return 0, fmt.Errorf("can't use %T as a scalar", v)
}

func toFloat64s(v interface{}) ([]float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]float64, rv.Len())
		for i := range out {
			f, err := toFloat64(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	}
	f, err := toFloat64(v)
	return []float64{f}, err
}
