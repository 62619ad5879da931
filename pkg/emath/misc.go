package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180.0 }

// SelectWhere returns the values for which keep[i] is true, in order
func SelectWhere(vals []float64, keep []bool) []float64 {
	out := []float64{}
	for i, v := range vals {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}
