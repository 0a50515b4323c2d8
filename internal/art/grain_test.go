package art

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func grayImage(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

func TestAddGrain_PerturbsPixels(t *testing.T) {
	img := grayImage(30, 30, 128)
	AddGrain(rand.New(rand.NewSource(1)), img, 0.2)

	var changed int
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 128 {
			changed++
		}
	}
	require.Greater(t, changed, 0, "grain must alter pixel values")
}

func TestAddGrain_AlphaUntouched(t *testing.T) {
	img := grayImage(12, 12, 128)
	AddGrain(rand.New(rand.NewSource(2)), img, 0.2)

	for i := 3; i < len(img.Pix); i += 4 {
		require.EqualValues(t, 255, img.Pix[i])
	}
}

func TestAddGrain_Deterministic(t *testing.T) {
	a := grayImage(24, 18, 100)
	b := grayImage(24, 18, 100)

	AddGrain(rand.New(rand.NewSource(7)), a, 0.15)
	AddGrain(rand.New(rand.NewSource(7)), b, 0.15)

	require.Equal(t, a.Pix, b.Pix)
}

func TestAddGrain_ClampsAtExtremes(t *testing.T) {
	// White input with subtle grain must clamp at 255 instead of
	// wrapping; wrapped values would show up near zero.
	img := grayImage(16, 16, 255)
	AddGrain(rand.New(rand.NewSource(3)), img, 0.05)

	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			require.GreaterOrEqual(t, img.Pix[i+c], uint8(200))
		}
	}
}

func TestAddGrain_TinyImage(t *testing.T) {
	// Smaller than the coarse grain block size; the coarse layer is
	// skipped but the fine layer still applies.
	img := grayImage(2, 2, 128)
	require.NotPanics(t, func() {
		AddGrain(rand.New(rand.NewSource(4)), img, 0.2)
	})
}
