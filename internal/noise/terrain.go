package noise

import (
	"math"
	"math/rand"
)

// Terrain sums randomly placed 2D Gaussian hills, adds a single low-frequency
// sinusoidal drift along both axes, smooths the result (σ=2) to remove hill
// boundary artifacts, and min-max normalizes. Hill radii are expressed as a
// fraction of the shorter canvas side; amplitudes fall in [0.3, 1.0].
//
// This is the primary generator for final output: callers drive nHills and
// the radius range from the sentiment energy (more, smaller hills at high
// energy; fewer, broader hills at low energy).
func Terrain(rng *rand.Rand, w, h, nHills int, minRadius, maxRadius float64) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}

	short := float64(w)
	if h < w {
		short = float64(h)
	}

	for n := 0; n < nHills; n++ {
		cx := rng.Float64() * float64(w)
		cy := rng.Float64() * float64(h)
		radius := (minRadius + rng.Float64()*(maxRadius-minRadius)) * short
		amplitude := 0.3 + rng.Float64()*0.7
		if radius <= 0 {
			continue
		}
		inv2r2 := 1.0 / (2 * radius * radius)
		for y := 0; y < h; y++ {
			dy := float64(y) - cy
			for x := 0; x < w; x++ {
				dx := float64(x) - cx
				f.Data[f.idx(x, y)] += amplitude * math.Exp(-(dx*dx+dy*dy)*inv2r2)
			}
		}
	}

	// Low-frequency drift keeps large canvases from reading as flat between hills.
	xFreq := 1 + rng.Float64()*2
	yFreq := 1 + rng.Float64()*2
	xPhase := rng.Float64() * 2 * math.Pi
	yPhase := rng.Float64() * 2 * math.Pi
	for y := 0; y < h; y++ {
		v := linspace(1, h, y)
		sy := math.Sin(v*yFreq*math.Pi + yPhase)
		for x := 0; x < w; x++ {
			u := linspace(1, w, x)
			f.Data[f.idx(x, y)] += 0.3 * (math.Sin(u*xFreq*math.Pi+xPhase) + sy)
		}
	}

	f.smooth(2.0)
	f.Normalize()
	return f, nil
}
