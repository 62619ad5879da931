package ecolor

import(
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba8(c color.Color) [4]uint32 {
	r, g, b, a := c.RGBA()
	return [4]uint32{r>>8, g>>8, b>>8, a>>8}
}

func TestViridisEnds(t *testing.T) {
	cm := Viridis(5)
	assert.Equal(t, [4]uint32{0x44, 0x01, 0x54, 0xff}, rgba8(cm.At(0)))
	assert.Equal(t, [4]uint32{0xfd, 0xe7, 0x25, 0xff}, rgba8(cm.At(1)))

	// Clamped outside [0,1]
	assert.Equal(t, rgba8(cm.At(0)), rgba8(cm.At(-3)))
	assert.Equal(t, rgba8(cm.At(1)), rgba8(cm.At(7)))

	_, _, _, a := cm.At(math.NaN()).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestColors(t *testing.T) {
	cols := Viridis(3).Colors()
	require.Len(t, cols, 3)
	assert.Equal(t, rgba8(Viridis(3).At(0.5)), rgba8(cols[1]))

	assert.Len(t, Viridis(0).Colors(), 2)
}

func TestNewColormapErrors(t *testing.T) {
	_, err := NewColormap("one", []string{"#000000"}, 4)
	assert.Error(t, err)

	_, err = NewColormap("bad", []string{"#000000", "nothex"}, 4)
	assert.Error(t, err)
}
