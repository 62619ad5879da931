package pzbins

import(
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/hsc-lss/pkg/flatmap"
	"github.com/abworrall/hsc-lss/pkg/hsccat"
)

type catRow struct {
	ID   int64   `fits:"object_id"`
	Mode float32 `fits:"pz_mode_nnz"`
}

// A 2x2 map of 1 deg pixels
var fieldInfo = flatmap.NewFlatMapInfo(flatmap.Wcs{Crpix: [2]float64{1, 1}, Cdelt: [2]float64{1, 1}}, 2, 2)

func writeField(t *testing.T) Config {
	root := t.TempDir()
	dataPath := filepath.Join(root, "data")
	fieldDir := filepath.Join(dataPath, "WIDE_TEST_i24p5")
	require.NoError(t, os.MkdirAll(fieldDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dataPath, "WIDE_OTHER"), 0755))

	mskfrac := flatmap.FlatMap{FlatMapInfo: fieldInfo, Values: []float64{1, 1, 0.5, math.NaN()}}
	require.NoError(t, flatmap.WriteFlatMaps(filepath.Join(fieldDir, "WIDE_TEST_MaskedFraction.fits"), mskfrac))

	rows := []interface{}{&catRow{1, 0.25}, &catRow{2, 0.5}, &catRow{3, 0.75}, &catRow{4, 1.0}}
	w, err := flatmap.Create(filepath.Join(fieldDir, "WIDE_TEST_Catalog_i24.50.fits"))
	require.NoError(t, err)
	require.NoError(t, w.WriteMap(mskfrac))
	require.NoError(t, w.WriteTable("CATALOG", []fitsio.Column{{Name: "object_id", Format: "K"}, {Name: "pz_mode_nnz", Format: "E"}}, rows))
	require.NoError(t, w.Close())

	pdfsPath := filepath.Join(root, "pdfs")
	require.NoError(t, os.MkdirAll(pdfsPath, 0755))
	writeMatchedPDFs(t, filepath.Join(pdfsPath, "matched_pdfs_ids_bins_wide_test_nnpz.fits"), []pdfRow{
		{1, [3]float64{1, 0, 0}},
		{2, [3]float64{1, 1, 0}},
		{3, [3]float64{0, 1, 1}},
		{4, [3]float64{0, 0, 1}},
	}, []float64{0, 0.5, 1})

	cfg := NewConfig()
	cfg.DataPath = dataPath
	cfg.PDFsPath = pdfsPath
	cfg.Fields = []string{"wide_test"}
	cfg.PZAlgs = []string{"nnpz"}
	cfg.OutDir = filepath.Join(root, "out")
	cfg.MaxNBin = 2
	require.NoError(t, cfg.Finalize())
	require.NoError(t, os.MkdirAll(cfg.OutDir, 0755))
	return cfg
}

func TestFindFieldFiles(t *testing.T) {
	cfg := writeField(t)
	ff, err := FindFieldFiles(cfg.DataPath, "wide_test")
	require.NoError(t, err)
	assert.Equal(t, "WIDE_TEST_Catalog_i24.50.fits", filepath.Base(ff.Catalog))
	assert.Equal(t, "WIDE_TEST_MaskedFraction.fits", filepath.Base(ff.MaskedFraction))

	_, err = FindFieldFiles(cfg.DataPath, "wide_vvds")
	assert.ErrorIs(t, err, hsccat.ErrMissingFile)

	// "WIDE" matches both folders
	_, err = FindFieldFiles(cfg.DataPath, "wide")
	assert.Error(t, err)
}

func TestPatchArea(t *testing.T) {
	mskfrac := flatmap.FlatMap{FlatMapInfo: fieldInfo, Values: []float64{1, 1, 0.5, math.NaN()}}
	deg2 := math.Pi / 180 * math.Pi / 180
	assert.InDelta(t, 2.5*deg2, PatchArea(mskfrac), 1e-15)
}

func TestRunField(t *testing.T) {
	cfg := writeField(t)

	fs, err := RunField(cfg, "wide_test")
	require.NoError(t, err)
	assert.Equal(t, 4, fs.NObjects)
	require.Len(t, fs.Algs, 1)

	as := fs.Algs[0]
	assert.Equal(t, "nnpz", as.Alg)
	assert.Equal(t, "pz_mode_nnz", as.ZKey)
	assert.Equal(t, []float64{2, 2, 2}, as.StackedNz)
	require.Len(t, as.Binnings, 2)

	b2 := as.Binnings[1]
	require.Len(t, b2.Bins, 2)
	assert.Equal(t, 2, b2.Bins[0].NGal)
	assert.Equal(t, 2, b2.Bins[1].NGal)
	assert.InDelta(t, 2/fs.AreaSr, b2.Bins[0].Density, 1e-6)

	require.NoError(t, fs.Write(cfg.OutDir))
	_, err = os.Stat(filepath.Join(cfg.OutDir, "nz_wide_test_nnpz.pdf"))
	assert.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(cfg.OutDir, "pzbins_wide_test.yaml"))
	require.NoError(t, err)
	back := FieldSummary{}
	require.NoError(t, yaml.Unmarshal(contents, &back))
	assert.Equal(t, "wide_test", back.Field)
	assert.Equal(t, 2, back.Algs[0].Binnings[1].NBin)
}

func TestConfigFinalize(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Finalize())
	assert.Equal(t, hsccat.MarkMode, cfg.Mark)
	assert.Len(t, cfg.Algs, 3)

	cfg.ZType = "mean"
	assert.ErrorIs(t, cfg.Finalize(), hsccat.ErrInvalidChoice)

	cfg = NewConfig()
	cfg.PZAlgs = SplitList("nnpz, dnnz")
	assert.ErrorIs(t, cfg.Finalize(), hsccat.ErrInvalidChoice)

	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a,b ,,c"))
}
