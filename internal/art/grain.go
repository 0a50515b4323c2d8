package art

import (
	"image"
	"math/rand"
)

// grainScale is the upscale factor of the coarse grain layer.
const grainScale = 3

// AddGrain overlays two layers of film-like grain onto img in place: a
// blocky layer generated at a third of the resolution and a fine
// per-pixel layer. The same offset is applied to all three color
// channels; alpha is left untouched.
func AddGrain(rng *rand.Rand, img *image.RGBA, intensity float64) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	smallW, smallH := w/grainScale, h/grainScale
	if smallW > 0 && smallH > 0 {
		small := make([]float64, smallW*smallH)
		for i := range small {
			small[i] = rng.NormFloat64() * intensity * 40
		}
		for y := 0; y < h; y++ {
			sy := y / grainScale
			if sy > smallH-1 {
				sy = smallH - 1
			}
			for x := 0; x < w; x++ {
				sx := x / grainScale
				if sx > smallW-1 {
					sx = smallW - 1
				}
				addOffset(img, x, y, small[sy*smallW+sx])
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			addOffset(img, x, y, rng.NormFloat64()*intensity*15)
		}
	}
}

func addOffset(img *image.RGBA, x, y int, g float64) {
	off := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	for c := 0; c < 3; c++ {
		v := float64(img.Pix[off+c]) + g
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		img.Pix[off+c] = uint8(v)
	}
}
