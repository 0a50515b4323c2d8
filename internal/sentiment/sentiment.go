// Package sentiment defines the four-dimensional mood vector driving art
// generation and the client boundary to the external text-analysis service.
package sentiment

import "strings"

// Scores holds the four independent sentiment dimensions, each in [0, 1].
// Positiveness selects color temperature, energy the turbulence level,
// complexity the structural intricacy, and conflictness the color variance.
type Scores struct {
	Positiveness float64 `json:"positiveness"`
	Energy       float64 `json:"energy"`
	Complexity   float64 `json:"complexity"`
	Conflictness float64 `json:"conflictness"`
}

// Neutral returns the all-0.5 vector used when a dimension is missing.
func Neutral() Scores {
	return Scores{Positiveness: 0.5, Energy: 0.5, Complexity: 0.5, Conflictness: 0.5}
}

// Clamped returns a copy with every dimension saturated to [0, 1].
// Out-of-range inputs are expected, not an error.
func (s Scores) Clamped() Scores {
	return Scores{
		Positiveness: clamp01(s.Positiveness),
		Energy:       clamp01(s.Energy),
		Complexity:   clamp01(s.Complexity),
		Conflictness: clamp01(s.Conflictness),
	}
}

// FromMap builds a clamped Scores from a loosely typed dimension map.
// Missing dimensions default to neutral 0.5.
func FromMap(m map[string]float64) Scores {
	get := func(key string) float64 {
		if v, ok := m[key]; ok {
			return clamp01(v)
		}
		return 0.5
	}
	return Scores{
		Positiveness: get("positiveness"),
		Energy:       get("energy"),
		Complexity:   get("complexity"),
		Conflictness: get("conflictness"),
	}
}

// Map returns the dimension map form used in logs and API responses.
func (s Scores) Map() map[string]float64 {
	return map[string]float64{
		"positiveness": s.Positiveness,
		"energy":       s.Energy,
		"complexity":   s.Complexity,
		"conflictness": s.Conflictness,
	}
}

// Describe renders a human-readable summary of the visual style the scores
// will produce.
func Describe(s Scores) string {
	s = s.Clamped()
	parts := make([]string, 0, 4)

	switch {
	case s.Positiveness > 0.7:
		parts = append(parts, "warm and inviting")
	case s.Positiveness < 0.3:
		parts = append(parts, "cool and contemplative")
	default:
		parts = append(parts, "neutral-toned")
	}

	switch {
	case s.Energy > 0.7:
		parts = append(parts, "dynamic and turbulent")
	case s.Energy < 0.3:
		parts = append(parts, "calm and flowing")
	default:
		parts = append(parts, "moderately energetic")
	}

	switch {
	case s.Complexity > 0.8:
		parts = append(parts, "with intricate reaction-diffusion patterns")
	case s.Complexity > 0.6:
		parts = append(parts, "featuring cellular structures")
	case s.Complexity > 0.4:
		parts = append(parts, "with fractal noise patterns")
	case s.Complexity > 0.2:
		parts = append(parts, "using smooth flowing noise")
	default:
		parts = append(parts, "with simple gradients")
	}

	switch {
	case s.Conflictness > 0.7:
		parts = append(parts, "and highly varied, conflicting colors")
	case s.Conflictness > 0.3:
		parts = append(parts, "with some color variation")
	default:
		parts = append(parts, "in a unified color scheme")
	}

	return "A " + strings.Join(parts, ", ") + " composition"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
