package noise

import (
	"math"
	"math/rand"
)

// Perlin produces a smooth pseudo-periodic field from summed sin·cos
// harmonics at octave-doubled frequencies plus per-octave Gaussian jitter.
// It is not true gradient noise; callers must not rely on gradient-noise
// statistics.
func Perlin(rng *rand.Rand, w, h int, scale float64, octaves int) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}
	if octaves < 1 {
		octaves = 1
	}

	for o := 0; o < octaves; o++ {
		freq := math.Pow(2, float64(o))
		amp := math.Pow(0.5, float64(o))
		for y := 0; y < h; y++ {
			yy := linspace(freq*scale*float64(h), h, y)
			for x := 0; x < w; x++ {
				xx := linspace(freq*scale*float64(w), w, x)
				layer := math.Sin(xx)*math.Cos(yy) + math.Sin(xx*1.5)*math.Cos(yy*1.5)
				layer += rng.NormFloat64() * 0.1
				f.Data[f.idx(x, y)] += layer * amp
			}
		}
	}

	f.Normalize()
	return f, nil
}

// FBM produces fractal Brownian motion: octaves of three phase-shifted
// sinusoidal products with persistence-scaled amplitude, lacunarity-scaled
// frequency, and Gaussian jitter per octave.
func FBM(rng *rand.Rand, w, h int, scale float64, octaves int, persistence, lacunarity float64) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}
	if octaves < 1 {
		octaves = 1
	}

	amplitude := 1.0
	frequency := scale
	for o := 0; o < octaves; o++ {
		for y := 0; y < h; y++ {
			yy := linspace(frequency*float64(h), h, y)
			for x := 0; x < w; x++ {
				xx := linspace(frequency*float64(w), w, x)
				layer := math.Sin(xx) * math.Cos(yy)
				layer += math.Sin(xx*2.1) * math.Cos(yy*1.9)
				layer += math.Cos(xx*0.9) * math.Sin(yy*1.1)
				layer += rng.NormFloat64() * 0.2
				f.Data[f.idx(x, y)] += layer * amplitude
			}
		}
		amplitude *= persistence
		frequency *= lacunarity
	}

	f.Normalize()
	return f, nil
}

// Turbulence distorts a base sinusoidal field's sampling coordinates with
// two independently generated Perlin fields scaled by power. Intended as a
// secondary blend input rather than a primary terrain generator.
func Turbulence(rng *rand.Rand, w, h int, baseScale, power float64) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}

	distortX, err := Perlin(rng, w, h, 0.05, 1)
	if err != nil {
		return nil, err
	}
	distortY, err := Perlin(rng, w, h, 0.05, 1)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		yy := linspace(baseScale*float64(h), h, y)
		for x := 0; x < w; x++ {
			i := f.idx(x, y)
			xx := linspace(baseScale*float64(w), w, x)
			xd := xx + distortX.Data[i]*power
			yd := yy + distortY.Data[i]*power
			f.Data[i] = math.Sin(xd)*math.Cos(yd) + math.Sin(xd*2.3)*math.Cos(yd*2.1)
		}
	}

	f.Normalize()
	return f, nil
}
