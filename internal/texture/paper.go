// Package texture overlays a paper-like grain onto rendered images,
// giving them a printed, physical feel.
package texture

import (
	"fmt"
	"image"

	"github.com/aquilax/go-perlin"
)

// PaperParams controls the paper grain overlay.
type PaperParams struct {
	// Scale is the noise feature size in pixels.
	Scale float64
	// Strength blends the grain into the image, 0 disables it.
	Strength float64
	Seed     int64
}

// DefaultPaperParams is a subtle cold-pressed paper look.
func DefaultPaperParams(seed int64) PaperParams {
	return PaperParams{Scale: 30, Strength: 0.15, Seed: seed}
}

// ApplyPaper multiplies a Perlin-based paper grain into img in place.
// Bright grain regions leave pixels untouched, dark regions dim them.
func ApplyPaper(img *image.RGBA, p PaperParams) error {
	if p.Scale <= 0 {
		return fmt.Errorf("paper scale must be positive")
	}
	if p.Strength < 0 || p.Strength > 1 {
		return fmt.Errorf("paper strength must be within [0,1]")
	}
	if p.Strength == 0 {
		return nil
	}

	// alpha: persistence, beta: lacunarity, n: octaves
	noise := perlin.NewPerlin(2.0, 2.0, 3, p.Seed)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nx := float64(x-bounds.Min.X) / p.Scale
			ny := float64(y-bounds.Min.Y) / p.Scale

			// Noise2D returns roughly [-1, 1].
			grain := (noise.Noise2D(nx, ny) + 1.0) / 2.0
			factor := 1.0 - p.Strength*(1.0-grain)

			off := img.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := float64(img.Pix[off+c]) * factor
				if v > 255 {
					v = 255
				}
				img.Pix[off+c] = uint8(v)
			}
		}
	}
	return nil
}
