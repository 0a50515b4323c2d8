package art

import (
	"image/color"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is a smooth color gradient indexed by normalized height.
type Palette []color.RGBA

// temperature bands selected by positiveness.
type hueBand struct {
	hueMin, hueMax float64
	saturation     float64
	brightness     float64
}

func bandFor(positiveness float64) hueBand {
	switch {
	case positiveness < 0.33:
		// Cold, deep purple to cyan.
		return hueBand{hueMin: 180, hueMax: 280, saturation: 0.6, brightness: 0.7}
	case positiveness < 0.66:
		// Neutral greens, teals and earth tones.
		return hueBand{hueMin: 60, hueMax: 180, saturation: 0.4, brightness: 0.6}
	default:
		// Warm, red through orange to yellow.
		return hueBand{hueMin: 0, hueMax: 60, saturation: 0.7, brightness: 0.8}
	}
}

// BuildPalette samples two or three key colors from the temperature band
// chosen by positiveness and expands them into a smooth gradient.
// Conflictness above 0.3 adds a third key, above 0.6 it pushes the middle
// key away from its neighbors.
func BuildPalette(rng *rand.Rand, positiveness, conflictness float64) Palette {
	band := bandFor(positiveness)

	nKeys := 2
	if conflictness > 0.3 {
		nKeys = 3
	}

	keys := make([]color.RGBA, nKeys)
	for i := 0; i < nKeys; i++ {
		var t float64
		if nKeys == 2 {
			t = 0.25
			if i == 1 {
				t = 0.75
			}
		} else {
			t = float64(i) / float64(nKeys-1)
		}

		hue := band.hueMin + t*(band.hueMax-band.hueMin)
		hue = math.Mod(hue+uniform(rng, -15, 15), 360)
		if hue < 0 {
			hue += 360
		}
		sat := clampRange(band.saturation+uniform(rng, -0.15, 0.15), 0.2, 0.9)
		bri := clampRange(band.brightness+uniform(rng, -0.15, 0.15), 0.3, 0.95)

		keys[i] = hsvToRGBA(hue, sat, bri)
	}

	if conflictness > 0.6 && nKeys == 3 {
		keys[1] = shiftKey(keys[1])
	}

	return gradient(keys)
}

// shiftKey rotates a key's hue by 0.15 of a turn and boosts its saturation,
// making it stand apart from its neighbors.
func shiftKey(c color.RGBA) color.RGBA {
	h, s, v := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	h = math.Mod(h+54, 360)
	s = math.Min(s*1.3, 0.9)
	return hsvToRGBA(h, s, v)
}

// gradient expands key colors into a smooth ramp, ten smoothstepped
// intermediate steps per pair plus the final key.
func gradient(keys []color.RGBA) Palette {
	const steps = 10
	palette := make(Palette, 0, steps*(len(keys)-1)+1)

	for i := 0; i < len(keys)-1; i++ {
		a, b := keys[i], keys[i+1]
		for step := 0; step < steps; step++ {
			t := float64(step) / steps
			t = t * t * (3.0 - 2.0*t)
			palette = append(palette, lerpRGBA(a, b, t))
		}
	}
	palette = append(palette, keys[len(keys)-1])
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R)*(1-t) + float64(b.R)*t),
		G: uint8(float64(a.G)*(1-t) + float64(b.G)*t),
		B: uint8(float64(a.B)*(1-t) + float64(b.B)*t),
		A: 255,
	}
}

func hsvToRGBA(h, s, v float64) color.RGBA {
	c := colorful.Hsv(h, s, v)
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
