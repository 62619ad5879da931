package pzbins

import(
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/hsc-lss/pkg/emath"
	"github.com/abworrall/hsc-lss/pkg/flatmap"
	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

// FieldFiles are the processed products of one survey field
type FieldFiles struct {
	Field           string
	Dir             string
	Catalog         string
	MaskedFraction  string
}

// FindFieldFiles looks in dataPath for the one directory whose name
// contains the upper-cased field name, then for the one catalog and one
// masked fraction map inside it.
func FindFieldFiles(dataPath, field string) (FieldFiles, error) {
	ff := FieldFiles{Field: field}

	contents, err := ioutil.ReadDir(dataPath)
	if err != nil {
		return ff, fmt.Errorf("readdir %s: %w", dataPath, err)
	}
	for _, item := range contents {
		name := item.Name()
		if !item.IsDir() || strings.Contains(name, ".fits") || !strings.Contains(name, strings.ToUpper(field)) {
			continue
		}
		if ff.Dir != "" {
			return ff, fmt.Errorf("more than one folder for %s: %s, %s", field, ff.Dir, name)
		}
		ff.Dir = filepath.Join(dataPath, name)
	}
	if ff.Dir == "" {
		return ff, fmt.Errorf("no folder for %s in %s: %w", field, dataPath, hsccat.ErrMissingFile)
	}

	if ff.Catalog, err = findOne(ff.Dir, "Catalog"); err != nil {
		return ff, err
	}
	if ff.MaskedFraction, err = findOne(ff.Dir, "MaskedFraction"); err != nil {
		return ff, err
	}
	return ff, nil
}

func findOne(dir, substr string) (string, error) {
	contents, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("readdir %s: %w", dir, err)
	}

	found := ""
	for _, item := range contents {
		if item.IsDir() || !strings.Contains(item.Name(), substr) {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("more than one %s file in %s", substr, dir)
		}
		found = filepath.Join(dir, item.Name())
	}
	if found == "" {
		return "", fmt.Errorf("no %s file in %s: %w", substr, dir, hsccat.ErrMissingFile)
	}
	return found, nil
}

// PatchArea is the unmasked area of a field in steradians
func PatchArea(mskfrac flatmap.FlatMap) float64 {
	return floats.Sum(flatmap.NaNToZero(mskfrac.Values)) * emath.Deg2Rad(mskfrac.Dx) * emath.Deg2Rad(mskfrac.Dy)
}
