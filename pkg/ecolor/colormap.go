package ecolor

import(
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// A Colormap maps a scalar in [0,1] onto a colour, by blending (in
// CIE-L*a*b*) between a list of anchor colours. It implements gonum
// plot's palette.Palette interface via Colors().
type Colormap struct {
	Name    string
	anchors []colorful.Color
	n       int  // how many colours Colors() returns
}

var(
	// Roughly matplotlib's viridis, which is what the plots used to look like
	viridisHex = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}
)

func NewColormap(name string, hexes []string, n int) (Colormap, error) {
	if len(hexes) < 2 {
		return Colormap{}, fmt.Errorf("colormap '%s' needs at least two anchors", name)
	}
	cm := Colormap{Name: name, n: n}
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Colormap{}, fmt.Errorf("colormap '%s', anchor '%s': %w", name, h, err)
		}
		cm.anchors = append(cm.anchors, c)
	}
	return cm, nil
}

func Viridis(n int) Colormap {
	cm, _ := NewColormap("viridis", viridisHex, n) // static anchors always parse
	return cm
}

// At returns the colour for t; t is clamped into [0,1], NaN is transparent.
func (cm Colormap)At(t float64) color.Color {
	if math.IsNaN(t) {
		return color.Transparent
	}
	if t <= 0 { return cm.anchors[0].Clamped() }
	if t >= 1 { return cm.anchors[len(cm.anchors)-1].Clamped() }

	seg := t * float64(len(cm.anchors)-1)
	i := int(seg)
	return cm.anchors[i].BlendLab(cm.anchors[i+1], seg-float64(i)).Clamped()
}

// Colors implements palette.Palette
func (cm Colormap)Colors() []color.Color {
	n := cm.n
	if n < 2 { n = 2 }
	cols := make([]color.Color, n)
	for i := range cols {
		cols[i] = cm.At(float64(i) / float64(n-1))
	}
	return cols
}
