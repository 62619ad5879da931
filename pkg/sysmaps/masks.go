package sysmaps

import "math"

// Depth values above this are junk from the depth estimator
const MaxSaneDepth = 40.0

// DepthMask is 1 where the depth map reaches depthCut, else 0. NaNs and
// insane depths count as zero depth.
func DepthMask(depth []float64, depthCut float64) []float64 {
	msk := make([]float64, len(depth))
	for i, d := range depth {
		if math.IsNaN(d) || d > MaxSaneDepth {
			d = 0
		}
		if d >= depthCut {
			msk[i] = 1
		}
	}
	return msk
}

// BOMask is 1 where the (bright-object) masked fraction exceeds thresh
func BOMask(maskedFraction []float64, thresh float64) []float64 {
	msk := make([]float64, len(maskedFraction))
	for i, f := range maskedFraction {
		if f > thresh {
			msk[i] = 1
		}
	}
	return msk
}

// TotalMask is the weight map used in the analysis: the masked fraction,
// zeroed where either binary mask excludes the pixel.
func TotalMask(maskedFraction, depth []float64, depthCut, thresh float64) []float64 {
	bo := BOMask(maskedFraction, thresh)
	dm := DepthMask(depth, depthCut)
	msk := make([]float64, len(maskedFraction))
	for i := range msk {
		msk[i] = bo[i] * dm[i] * maskedFraction[i]
	}
	return msk
}
