package flatmap

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsMap(t *testing.T) {
	fi := testInfo()
	ra := []float64{140, 139.99, 139.55, 150}
	dec := []float64{1, 1.01, 1, 1}

	m, err := CountsMap(ra, dec, fi)
	require.NoError(t, err)
	require.Len(t, m.Values, fi.Npix())

	assert.Equal(t, 2.0, m.Values[fi.Pos2Pix(140, 1)])
	assert.Equal(t, 1.0, m.Values[fi.Pos2Pix(139.55, 1)])

	total := 0.0
	for _, v := range m.Values {
		total += v
	}
	assert.Equal(t, 3.0, total, "the object off the map is dropped")

	_, err = CountsMap(ra, dec[:2], fi)
	assert.Error(t, err)

	assert.NotNil(t, CountsHistogram(m))
}
