package noise

import (
	"math/rand"

	"github.com/dgravesa/go-parallel/parallel"
)

// Gray–Scott constants: diffusion rates for the two species and the explicit
// Euler time step.
const (
	diffusionA = 1.0
	diffusionB = 0.5
	reactionDT = 1.0
)

// ReactionDiffusion simulates a Gray–Scott system. Species A starts at 1
// everywhere; species B is seeded with five random circular patches. Each
// step applies a 3×3 weighted Laplacian (corners 0.05, edges 0.2, center −1)
// with edge-replicated boundaries and the reaction term A·B², then clamps
// both fields to [0, 1].
//
// The returned field is the final B concentration, deliberately left
// unnormalized; callers needing a [0, 1]-spanning range normalize themselves.
func ReactionDiffusion(rng *rand.Rand, w, h, steps int, feedRate, killRate float64) (*Field, error) {
	b, err := NewField(w, h)
	if err != nil {
		return nil, err
	}

	a := make([]float64, w*h)
	for i := range a {
		a[i] = 1
	}

	// Seed activator patches in the central half of the canvas.
	for n := 0; n < 5; n++ {
		cx := w / 4
		if span := 3*w/4 - w/4; span > 0 {
			cx += rng.Intn(span)
		}
		cy := h / 4
		if span := 3*h/4 - h/4; span > 0 {
			cy += rng.Intn(span)
		}
		radius := 5 + rng.Intn(10)
		r2 := radius * radius
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := x - cx
				dy := y - cy
				if dx*dx+dy*dy <= r2 {
					b.Data[y*w+x] = 1
				}
			}
		}
	}

	lapA := make([]float64, w*h)
	lapB := make([]float64, w*h)

	laplacian := func(src, dst []float64) {
		parallel.For(h, func(y, _ int) {
			yu := clampInt(y-1, 0, h-1) * w
			yd := clampInt(y+1, 0, h-1) * w
			yc := y * w
			for x := 0; x < w; x++ {
				xl := clampInt(x-1, 0, w-1)
				xr := clampInt(x+1, 0, w-1)
				dst[yc+x] = 0.05*(src[yu+xl]+src[yu+xr]+src[yd+xl]+src[yd+xr]) +
					0.2*(src[yu+x]+src[yd+x]+src[yc+xl]+src[yc+xr]) -
					src[yc+x]
			}
		})
	}

	for step := 0; step < steps; step++ {
		laplacian(a, lapA)
		laplacian(b.Data, lapB)

		parallel.For(h, func(y, _ int) {
			row := y * w
			for x := 0; x < w; x++ {
				i := row + x
				reaction := a[i] * b.Data[i] * b.Data[i]
				a[i] = clamp01(a[i] + reactionDT*(diffusionA*lapA[i]-reaction+feedRate*(1-a[i])))
				b.Data[i] = clamp01(b.Data[i] + reactionDT*(diffusionB*lapB[i]+reaction-(killRate+feedRate)*b.Data[i]))
			}
		})
	}

	return b, nil
}
