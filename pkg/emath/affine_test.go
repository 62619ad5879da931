package emath

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAff3Compose(t *testing.T) {
	// Rightmost op runs first: (x-10)*2, then +1
	m := Identity().Translate(1, 1).Scale(2, 2).Translate(-10, -10)
	x, y := m.Apply(10, 12)
	assert.InDelta(t, 1.0, x, 1e-12)
	assert.InDelta(t, 5.0, y, 1e-12)
}

func TestAff3Invert(t *testing.T) {
	m := Identity().Translate(3, -2).Scale(-0.5, 4).Translate(7, 1)
	inv, err := m.Invert()
	require.NoError(t, err)

	x, y := inv.Apply(m.Apply(1.25, -3.5))
	assert.InDelta(t, 1.25, x, 1e-12)
	assert.InDelta(t, -3.5, y, 1e-12)

	_, err = Identity().Scale(0, 1).Invert()
	assert.Error(t, err)
}
