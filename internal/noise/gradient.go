package noise

import "math/rand"

// Gradient produces a diagonal ramp (x+y)/(w+h) with slight Gaussian jitter,
// clamped to [0, 1]. It is the low-complexity baseline field and a common
// blend ingredient for richer maps.
func Gradient(rng *rand.Rand, w, h int) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}

	denom := float64(w + h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ramp := float64(x+y) / denom
			f.Data[f.idx(x, y)] = clamp01(ramp + rng.NormFloat64()*0.05)
		}
	}
	return f, nil
}
