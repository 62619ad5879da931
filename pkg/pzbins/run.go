package pzbins

import(
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/hsc-lss/pkg/flatmap"
	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

// AlgSummary is the binning study for one photo-z code
type AlgSummary struct {
	Alg       string
	ZKey      string
	Z         []float64   `yaml:",flow"`
	StackedNz []float64   `yaml:",flow"`
	Binnings  []Binning
}

// FieldSummary is what gets written out for a field
type FieldSummary struct {
	Field     string
	AreaSr    float64
	NObjects  int
	Algs      []AlgSummary
}

func (fs FieldSummary)String() string {
	str := fmt.Sprintf("Field %s: %d objects over %.5f sr [\n", fs.Field, fs.NObjects, fs.AreaSr)
	for _, as := range fs.Algs {
		str += fmt.Sprintf("  %s (%s):\n", as.Alg, as.ZKey)
		for _, b := range as.Binnings {
			str += fmt.Sprintf("    nbin=%d edges=%.3f\n", b.NBin, b.Edges)
		}
	}
	return str + "]\n"
}

// RunField does all the work for one field: reads its catalog and mask,
// then bins it once per photo-z algorithm and per bin count.
func RunField(cfg Config, field string) (FieldSummary, error) {
	startTime := time.Now()
	fs := FieldSummary{Field: field}

	ff, err := FindFieldFiles(cfg.DataPath, field)
	if err != nil {
		return fs, err
	}

	mskfrac, err := flatmap.ReadFlatMap(ff.MaskedFraction, 0)
	if err != nil {
		return fs, err
	}
	fs.AreaSr = PatchArea(mskfrac)

	ids, err := hsccat.ReadIDColumn(ff.Catalog, 1, hsccat.ColObjectID)
	if err != nil {
		return fs, err
	}
	fs.NObjects = len(ids)
	log.Printf("Read %s: %d objects, area %.5f sr", ff.Catalog, fs.NObjects, fs.AreaSr)

	for _, alg := range cfg.Algs {
		as, err := runAlg(cfg, ff, alg, ids, fs.AreaSr)
		if err != nil {
			return fs, fmt.Errorf("field %s, %s: %w", field, alg, err)
		}
		fs.Algs = append(fs.Algs, as)
	}

	log.Printf("Field %s done in %s", field, time.Since(startTime))
	return fs, nil
}

func runAlg(cfg Config, ff FieldFiles, alg hsccat.PZType, ids []int64, areaSr float64) (AlgSummary, error) {
	as := AlgSummary{Alg: alg.String(), ZKey: hsccat.MarkColumn(cfg.Mark, alg)}

	pdfFile := filepath.Join(cfg.PDFsPath, fmt.Sprintf("matched_pdfs_ids_bins_%s_%s.fits", ff.Field, alg))
	log.Printf("Reading in %s", pdfFile)
	mp, err := ReadMatchedPDFs(pdfFile)
	if err != nil {
		return as, err
	}
	as.Z = mp.Z
	as.StackedNz = mp.Stack(nil)

	cols, err := hsccat.ReadColumns(ff.Catalog, 1, as.ZKey)
	if err != nil {
		return as, err
	}
	zphot := cols[as.ZKey]

	for nbin:=1; nbin<=cfg.MaxNBin; nbin++ {
		b := MakeBinning(nbin, zphot, ids, mp, areaSr)
		if cfg.Verbosity > 0 {
			log.Printf("nbin=%d: edges %.3f", nbin, b.Edges)
		}
		as.Binnings = append(as.Binnings, b)
	}
	return as, nil
}

// Write stores the summary as YAML, plus an N(z) plot per algorithm.
func (fs FieldSummary)Write(outDir string) error {
	b, err := yaml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("summary yaml %s: %w", fs.Field, err)
	}
	filename := filepath.Join(outDir, fmt.Sprintf("pzbins_%s.yaml", fs.Field))
	if err := ioutil.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}

	for _, as := range fs.Algs {
		plotFile := filepath.Join(outDir, fmt.Sprintf("nz_%s_%s.pdf", fs.Field, as.Alg))
		if err := as.WritePlot(plotFile); err != nil {
			return err
		}
	}
	return nil
}
