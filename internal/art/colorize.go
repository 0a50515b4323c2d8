package art

import (
	"image"

	"github.com/the-o-space/Cue/internal/noise"
)

// Colorize maps a normalized height field onto a palette, producing an
// opaque RGBA image. The palette is split into equal bins over [0, 1);
// within a bin each pixel interpolates toward the next color, and the
// last bin renders flat.
func Colorize(field *noise.Field, palette Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, field.W, field.H))
	n := len(palette)

	for y := 0; y < field.H; y++ {
		for x := 0; x < field.W; x++ {
			h := field.At(x, y)

			i := int(h * float64(n))
			if i < 0 {
				i = 0
			}
			if i > n-1 {
				i = n - 1
			}

			c := palette[i]
			if i < n-1 {
				t := (h - float64(i)/float64(n)) * float64(n)
				if t < 0 {
					t = 0
				}
				if t > 1 {
					t = 1
				}
				c = lerpRGBA(palette[i], palette[i+1], t)
			}

			off := img.PixOffset(x, y)
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = 255
		}
	}
	return img
}
