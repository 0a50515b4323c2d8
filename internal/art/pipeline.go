// Package art turns sentiment scores into rasterized generative images.
// A height field from one of the noise algorithms is colorized through a
// temperature-based palette, grained, and softened.
package art

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"

	"github.com/disintegration/gift"

	"github.com/the-o-space/Cue/internal/noise"
	"github.com/the-o-space/Cue/internal/sentiment"
)

// PrimaryKinds are the noise algorithms the pipeline renders. The
// remaining algorithms in the noise package are library capabilities
// without an energy parameter mapping.
var PrimaryKinds = []noise.Kind{
	noise.KindTerrain,
	noise.KindValue,
	noise.KindWorley,
	noise.KindGradient,
}

// Generator renders sentiment-driven art at a fixed size.
type Generator struct {
	Width  int
	Height int

	Logger *slog.Logger
}

// NewGenerator validates the output size and returns a generator.
func NewGenerator(width, height int) (*Generator, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d: %w", width, height, noise.ErrInvalidShape)
	}
	return &Generator{Width: width, Height: height}, nil
}

func (g *Generator) log() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// HeightMap generates a normalized height field for one of the primary
// kinds, with algorithm parameters derived from the energy score.
// High energy blends a subtle secondary terrain field into terrain and
// value maps for extra turbulence.
func (g *Generator) HeightMap(rng *rand.Rand, energy float64, kind noise.Kind) (*noise.Field, error) {
	var (
		base *noise.Field
		err  error
	)

	switch kind {
	case noise.KindGradient:
		base, err = noise.Gradient(rng, g.Width, g.Height)
		if err != nil {
			return nil, err
		}
		var terrain *noise.Field
		terrain, err = noise.Terrain(rng, g.Width, g.Height, 5, 0.2, 0.5)
		if err != nil {
			return nil, err
		}
		base, err = noise.Blend(base, terrain, 0.4)

	case noise.KindTerrain:
		nHills := int(10 + energy*20)
		minRadius := 0.05 + (1-energy)*0.1
		maxRadius := 0.2 + (1-energy)*0.3
		base, err = noise.Terrain(rng, g.Width, g.Height, nHills, minRadius, maxRadius)

	case noise.KindValue:
		gridSize := int(4 + energy*12)
		base, err = noise.Value(rng, g.Width, g.Height, gridSize)

	case noise.KindWorley:
		nPoints := int(20 + energy*80)
		base, err = noise.Worley(rng, g.Width, g.Height, nPoints, 1)

	default:
		return nil, fmt.Errorf("height map kind %q: %w", kind, noise.ErrUnsupportedAlgorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("generating %s height map: %w", kind, err)
	}

	if energy > 0.6 && (kind == noise.KindTerrain || kind == noise.KindValue) {
		turbulence, err := noise.Terrain(rng, g.Width, g.Height, int(5+energy*10), 0.05, 0.15)
		if err != nil {
			return nil, fmt.Errorf("generating turbulence field: %w", err)
		}
		strength := (energy - 0.6) * 0.2
		base, err = noise.Blend(base, turbulence, strength)
		if err != nil {
			return nil, fmt.Errorf("blending turbulence: %w", err)
		}
	}

	base.Normalize()
	return base, nil
}

// Render produces a single image for the given scores and noise kind.
func (g *Generator) Render(rng *rand.Rand, scores sentiment.Scores, kind noise.Kind) (*image.RGBA, error) {
	scores = scores.Clamped()

	field, err := g.HeightMap(rng, scores.Energy, kind)
	if err != nil {
		return nil, err
	}

	palette := BuildPalette(rng, scores.Positiveness, scores.Conflictness)
	img := Colorize(field, palette)

	AddGrain(rng, img, GrainIntensity(scores.Energy))
	img = g.blur(img, scores.Energy)

	g.log().Debug("rendered image",
		"kind", string(kind),
		"width", g.Width,
		"height", g.Height,
		"palette_colors", len(palette))
	return img, nil
}

// RenderAll renders one image per primary kind, sharing a single palette
// so the variations differ only in structure.
func (g *Generator) RenderAll(rng *rand.Rand, scores sentiment.Scores) (map[noise.Kind]*image.RGBA, error) {
	scores = scores.Clamped()
	palette := BuildPalette(rng, scores.Positiveness, scores.Conflictness)

	images := make(map[noise.Kind]*image.RGBA, len(PrimaryKinds))
	for _, kind := range PrimaryKinds {
		field, err := g.HeightMap(rng, scores.Energy, kind)
		if err != nil {
			return nil, err
		}

		img := Colorize(field, palette)
		AddGrain(rng, img, GrainIntensity(scores.Energy))
		images[kind] = g.blur(img, scores.Energy)
	}

	g.log().Info("rendered all noise variations",
		"count", len(images),
		"width", g.Width,
		"height", g.Height)
	return images, nil
}

// RenderVariations renders count independent terrain images for the same
// scores, each from its own deterministically seeded random source.
func (g *Generator) RenderVariations(scores sentiment.Scores, count int) ([]*image.RGBA, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid variation count %d", count)
	}

	images := make([]*image.RGBA, 0, count)
	for i := 0; i < count; i++ {
		rng := rand.New(rand.NewSource(int64(i)*1000 + 42))
		img, err := g.Render(rng, scores, noise.KindTerrain)
		if err != nil {
			return nil, fmt.Errorf("rendering variation %d: %w", i, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// GrainIntensity maps the energy score to the grain overlay strength.
func GrainIntensity(energy float64) float64 {
	return 0.05 + energy*0.15
}

// BlurRadius maps the energy score to the post-blur radius. Energy at or
// above 0.7 disables the blur.
func BlurRadius(energy float64) float64 {
	if energy >= 0.7 {
		return 0
	}
	return 1.0 - energy*0.5
}

func (g *Generator) blur(img *image.RGBA, energy float64) *image.RGBA {
	radius := BlurRadius(energy)
	if radius <= 0 {
		return img
	}
	filter := gift.New(gift.GaussianBlur(float32(radius)))
	dst := image.NewRGBA(filter.Bounds(img.Bounds()))
	filter.Draw(dst, img)
	return dst
}
