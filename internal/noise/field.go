// Package noise implements the scalar field generators used as height maps
// by the art pipeline. Every generator is a pure function of its parameters
// and an explicit random source; the same seed always produces the same field.
package noise

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidShape is returned when a requested field dimension is not positive.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrUnsupportedAlgorithm is returned for noise kinds this library does not implement.
	ErrUnsupportedAlgorithm = errors.New("unsupported noise algorithm")
)

// Field is a dense row-major grid of float64 samples, one per pixel.
type Field struct {
	W    int
	H    int
	Data []float64
}

// NewField allocates a zeroed field after validating the shape.
func NewField(w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, w, h)
	}
	return &Field{W: w, H: h, Data: make([]float64, w*h)}, nil
}

func (f *Field) idx(x, y int) int { return y*f.W + x }

// At returns the sample at (x, y).
func (f *Field) At(x, y int) float64 { return f.Data[y*f.W+x] }

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) { f.Data[y*f.W+x] = v }

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	data := make([]float64, len(f.Data))
	copy(data, f.Data)
	return &Field{W: f.W, H: f.H, Data: data}
}

// MinMax returns the smallest and largest sample values.
func (f *Field) MinMax() (float64, float64) {
	lo, hi := f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize rescales the field to span [0, 1]. A degenerate field (constant
// everywhere) becomes the constant 0.5 field instead of dividing by zero.
func (f *Field) Normalize() {
	lo, hi := f.MinMax()
	span := hi - lo
	if span == 0 {
		for i := range f.Data {
			f.Data[i] = 0.5
		}
		return
	}
	inv := 1.0 / span
	for i, v := range f.Data {
		f.Data[i] = (v - lo) * inv
	}
}

// Blend returns a*(1-t) + b*t as a new field. Both inputs are read-only.
func Blend(a, b *Field, t float64) (*Field, error) {
	if a.W != b.W || a.H != b.H {
		return nil, fmt.Errorf("%w: blend of %dx%d with %dx%d", ErrInvalidShape, a.W, a.H, b.W, b.H)
	}
	out, err := NewField(a.W, a.H)
	if err != nil {
		return nil, err
	}
	for i := range out.Data {
		out.Data[i] = a.Data[i]*(1-t) + b.Data[i]*t
	}
	return out, nil
}

// smooth applies a separable Gaussian convolution with edge-replicated
// boundaries. The kernel radius follows the usual 4-sigma truncation.
func (f *Field) smooth(sigma float64) {
	if sigma <= 0 {
		return
	}
	radius := int(math.Round(4 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	inv2s2 := 1.0 / (2 * sigma * sigma)
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-float64(k*k) * inv2s2)
		kernel[k+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	tmp := make([]float64, len(f.Data))

	// Horizontal pass.
	for y := 0; y < f.H; y++ {
		row := y * f.W
		for x := 0; x < f.W; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				xx := clampInt(x+k, 0, f.W-1)
				acc += f.Data[row+xx] * kernel[k+radius]
			}
			tmp[row+x] = acc
		}
	}

	// Vertical pass.
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				yy := clampInt(y+k, 0, f.H-1)
				acc += tmp[yy*f.W+x] * kernel[k+radius]
			}
			f.Data[y*f.W+x] = acc
		}
	}
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

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// linspace mimics an inclusive-endpoint ramp: index i of n samples over
// [0, stop]. A single sample collapses to 0.
func linspace(stop float64, n, i int) float64 {
	if n <= 1 {
		return 0
	}
	return stop * float64(i) / float64(n-1)
}

// Smoothstep is the cubic ease curve t²(3−2t).
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}
