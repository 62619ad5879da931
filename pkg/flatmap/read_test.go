package flatmap

import(
	"math"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMap(descr string, scale float64) FlatMap {
	m := FlatMap{FlatMapInfo: testInfo(), Descr: descr}
	m.Values = make([]float64, m.Npix())
	for i := range m.Values {
		m.Values[i] = scale * float64(i)
	}
	return m
}

type testRow struct {
	A float32 `fits:"a"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "maps.fits")

	w, err := Create(filename)
	require.NoError(t, err)
	require.NoError(t, w.WriteMap(testMap("first", 1)))
	require.NoError(t, w.WriteTable("EXTRA", []fitsio.Column{{Name: "a", Format: "E"}}, []interface{}{&testRow{1}, &testRow{2}}))
	require.NoError(t, w.WriteMap(testMap("second", 2)))
	require.NoError(t, w.Close())

	n, err := CountHDUs(filename)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	m, err := ReadFlatMap(filename, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", m.Descr)
	assert.NoError(t, CompareInfos(testInfo(), m.FlatMapInfo))
	assert.Equal(t, testMap("second", 2).Values, m.Values)

	_, err = ReadFlatMap(filename, 1)
	assert.Error(t, err, "HDU 1 is a table")
	_, err = ReadFlatMap(filename, 3)
	assert.Error(t, err)

	maps, err := ReadFlatMaps(filename)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, "first", maps[0].Descr)
}

func TestWriteShapeMismatch(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "bad.fits"))
	require.NoError(t, err)
	defer w.Close()

	m := testMap("short", 1)
	m.Values = m.Values[1:]
	assert.ErrorIs(t, w.WriteMap(m), ErrShapeMismatch)
}

func TestWriteTableFirst(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "bad.fits"))
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.WriteTable("T", []fitsio.Column{{Name: "a", Format: "E"}}, nil))
}

func TestReadMissing(t *testing.T) {
	_, err := ReadFlatMap(filepath.Join(t.TempDir(), "nope.fits"), 0)
	assert.ErrorIs(t, err, ErrMissingFile)

	_, err = ReadFlatMaps(filepath.Join(t.TempDir(), "nope.fits"))
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestGridAndNaNToZero(t *testing.T) {
	m := testMap("", 1)
	g, err := m.Grid()
	require.NoError(t, err)
	assert.Equal(t, 10, g.Dx())
	assert.Equal(t, 5, g.Dy())
	assert.Equal(t, 23.0, g.Get(3, 2))

	vals := NaNToZero([]float64{1, math.NaN(), 3})
	assert.Equal(t, []float64{1, 0, 3}, vals)
}
