package flatmap

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 10x5 map of 0.1 deg pixels, RA running right to left
func testInfo() FlatMapInfo {
	return NewFlatMapInfo(Wcs{
		Ctype: [2]string{"RA---CAR", "DEC--CAR"},
		Crpix: [2]float64{5.5, 3},
		Crval: [2]float64{140, 1},
		Cdelt: [2]float64{-0.1, 0.1},
	}, 10, 5)
}

func TestFlatMapInfo(t *testing.T) {
	fi := testInfo()
	assert.Equal(t, 50, fi.Npix())
	assert.InDelta(t, 0.1, fi.Dx, 1e-12)
	assert.InDelta(t, 0.1, fi.Dy, 1e-12)
	assert.InDelta(t, 1.0, fi.Lx(), 1e-12)
	assert.InDelta(t, 0.5, fi.Ly(), 1e-12)
}

func TestPos2Pix(t *testing.T) {
	fi := testInfo()

	// CRVAL sits at 1-based CRPIX, i.e. 0-based (4.5, 2); x rounds up
	assert.Equal(t, 2*10 + 5, fi.Pos2Pix(140, 1))

	// RA decreases with x
	assert.Equal(t, 2*10 + 0, fi.Pos2Pix(140.45, 1))
	assert.Equal(t, 2*10 + 9, fi.Pos2Pix(139.55, 1))
	assert.Equal(t, 0*10 + 5, fi.Pos2Pix(140, 0.8))

	assert.Equal(t, -1, fi.Pos2Pix(141, 1))
	assert.Equal(t, -1, fi.Pos2Pix(140, 2))
}

func TestPix2PosRoundTrip(t *testing.T) {
	fi := testInfo()
	for ipix:=0; ipix<fi.Npix(); ipix++ {
		ra, dec, err := fi.Pix2Pos(ipix)
		require.NoError(t, err)
		assert.Equal(t, ipix, fi.Pos2Pix(ra, dec), "pixel %d at (%f,%f)", ipix, ra, dec)
	}

	_, _, err := fi.Pix2Pos(fi.Npix())
	assert.Error(t, err)
	_, _, err = fi.Pix2Pos(-1)
	assert.Error(t, err)
}

func TestCompareInfos(t *testing.T) {
	a := testInfo()
	assert.NoError(t, CompareInfos(a, testInfo()))

	b := testInfo()
	b.Nx = 11
	assert.Error(t, CompareInfos(a, b))

	c := testInfo()
	c.Crval[0] = 141
	assert.Error(t, CompareInfos(a, c))
}
