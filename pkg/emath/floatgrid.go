package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, stored row by row (a flat map of
// nx*ny pixels, pixel [x,y] at index y*nx + x). Row 0 is the bottom
// row of the sky, as in FITS.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFrom wraps an existing flat array; it does not copy.
func NewFloatGridFrom(values []float64, w int) (FloatGrid, error) {
	if w <= 0 || len(values) % w != 0 {
		return FloatGrid{}, fmt.Errorf("can't wrap %d values in a grid of width %d", len(values), w)
	}
	return FloatGrid{stride: w, values: values}, nil
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int                 { return len(fg.values) / fg.stride }
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Add accumulates another grid of the same shape into this one
func (g1 *FloatGrid)Add(g2 FloatGrid) error {
	if g1.stride != g2.stride || len(g1.values) != len(g2.values) {
		return fmt.Errorf("grid shapes differ: %dx%d vs %dx%d", g1.Dx(), g1.Dy(), g2.Dx(), g2.Dy())
	}
	for i:=0; i<len(g1.values); i++ {
		g1.values[i] += g2.values[i]
	}
	return nil
}

// MinMax ignores NaNs. An all-NaN grid gives (+Inf, -Inf).
func (fg *FloatGrid)MinMax() (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range fg.values {
		if math.IsNaN(v) { continue }
		if v > max { max = v }
		if v < min { min = v }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision. NaN pixels come out black.
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()
	if max <= min {
		max = min + 1
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			val := fg.Get(x,y)
			gray := 0.0
			if !math.IsNaN(val) {
				gray = GammaExpand_F64 ((val - min) / (max - min))
			}
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, fg.Dy()-1-y, col) // FITS row 0 is at the bottom
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
