package noise

import (
	"fmt"
	"math/rand"
)

// Kind identifies one of the noise algorithms in this library.
type Kind string

const (
	KindTerrain           Kind = "terrain"
	KindValue             Kind = "value"
	KindWorley            Kind = "worley"
	KindGradient          Kind = "gradient"
	KindPerlin            Kind = "perlin"
	KindFBM               Kind = "fbm"
	KindReactionDiffusion Kind = "reaction_diffusion"
	KindTurbulence        Kind = "turbulence"
)

// Kinds lists every algorithm the library implements.
var Kinds = []Kind{
	KindTerrain,
	KindValue,
	KindWorley,
	KindGradient,
	KindPerlin,
	KindFBM,
	KindReactionDiffusion,
	KindTurbulence,
}

// ParseKind validates a kind name from external input.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// Default parameters used by Generate when a caller does not need
// algorithm-specific tuning.
const (
	DefaultPerlinScale   = 0.1
	DefaultFBMScale      = 0.02
	DefaultFBMOctaves    = 6
	DefaultPersistence   = 0.5
	DefaultLacunarity    = 2.0
	DefaultWorleyPoints  = 50
	DefaultSteps         = 100
	DefaultFeedRate      = 0.055
	DefaultKillRate      = 0.062
	DefaultTurbScale     = 0.02
	DefaultTurbPower     = 5.0
	DefaultHills         = 15
	DefaultMinHillRadius = 0.1
	DefaultMaxHillRadius = 0.4
	DefaultGridSize      = 8
)

// Generate dispatches to the named algorithm with its default parameters.
// Unknown kinds fail fast with ErrUnsupportedAlgorithm.
func Generate(rng *rand.Rand, kind Kind, w, h int) (*Field, error) {
	switch kind {
	case KindGradient:
		return Gradient(rng, w, h)
	case KindPerlin:
		return Perlin(rng, w, h, DefaultPerlinScale, 1)
	case KindFBM:
		return FBM(rng, w, h, DefaultFBMScale, DefaultFBMOctaves, DefaultPersistence, DefaultLacunarity)
	case KindWorley:
		return Worley(rng, w, h, DefaultWorleyPoints, 1)
	case KindReactionDiffusion:
		return ReactionDiffusion(rng, w, h, DefaultSteps, DefaultFeedRate, DefaultKillRate)
	case KindTurbulence:
		return Turbulence(rng, w, h, DefaultTurbScale, DefaultTurbPower)
	case KindTerrain:
		return Terrain(rng, w, h, DefaultHills, DefaultMinHillRadius, DefaultMaxHillRadius)
	case KindValue:
		return Value(rng, w, h, DefaultGridSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, kind)
	}
}
