package texture

import (
	"image"
	"testing"
)

func filledImage(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

func TestApplyPaper_Validation(t *testing.T) {
	img := filledImage(8, 8, 200)

	if err := ApplyPaper(img, PaperParams{Scale: 0, Strength: 0.1, Seed: 1}); err == nil {
		t.Error("expected error for zero scale")
	}
	if err := ApplyPaper(img, PaperParams{Scale: 30, Strength: 1.5, Seed: 1}); err == nil {
		t.Error("expected error for strength > 1")
	}
	if err := ApplyPaper(img, PaperParams{Scale: 30, Strength: -0.1, Seed: 1}); err == nil {
		t.Error("expected error for negative strength")
	}
}

func TestApplyPaper_ZeroStrengthNoop(t *testing.T) {
	img := filledImage(8, 8, 200)
	want := make([]uint8, len(img.Pix))
	copy(want, img.Pix)

	if err := ApplyPaper(img, PaperParams{Scale: 30, Strength: 0, Seed: 1}); err != nil {
		t.Fatal(err)
	}

	for i := range img.Pix {
		if img.Pix[i] != want[i] {
			t.Fatalf("pixel data changed at %d with zero strength", i)
		}
	}
}

func TestApplyPaper_DarkensOnly(t *testing.T) {
	img := filledImage(32, 32, 200)

	if err := ApplyPaper(img, DefaultPaperParams(7)); err != nil {
		t.Fatal(err)
	}

	var changed int
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := img.Pix[i+c]
			if v > 200 {
				t.Fatalf("grain brightened a pixel: %d > 200", v)
			}
			if v != 200 {
				changed++
			}
		}
		if img.Pix[i+3] != 255 {
			t.Fatal("alpha channel changed")
		}
	}
	if changed == 0 {
		t.Error("expected grain to alter some pixels")
	}
}

func TestApplyPaper_Deterministic(t *testing.T) {
	a := filledImage(16, 16, 180)
	b := filledImage(16, 16, 180)

	if err := ApplyPaper(a, DefaultPaperParams(42)); err != nil {
		t.Fatal(err)
	}
	if err := ApplyPaper(b, DefaultPaperParams(42)); err != nil {
		t.Fatal(err)
	}

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("same seed produced different grain at %d", i)
		}
	}
}
