package noise

import (
	"fmt"
	"math"
	"math/rand"
)

// Value generates smooth value noise: a coarse random grid (gridSize rows,
// columns scaled to preserve aspect ratio, padded by 3 cells for the spline
// support) is Gaussian-smoothed (σ=1) and bicubically interpolated up to the
// full resolution, then min-max normalized.
func Value(rng *rand.Rand, w, h, gridSize int) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}
	if gridSize < 1 {
		return nil, fmt.Errorf("value: grid size must be positive, got %d", gridSize)
	}

	gridH := gridSize
	gridW := gridSize * w / h
	if gridW < 1 {
		gridW = 1
	}

	grid, err := NewField(gridW+3, gridH+3)
	if err != nil {
		return nil, err
	}
	for i := range grid.Data {
		grid.Data[i] = rng.Float64()
	}
	grid.smooth(1.0)

	// Grid row r carries coordinate r−1; the padding shifts interior samples
	// to [1, gridH+1] so the cubic support never runs off the grid.
	for y := 0; y < h; y++ {
		gy := linspace(float64(gridH-1), h, y) + 1
		for x := 0; x < w; x++ {
			gx := linspace(float64(gridW-1), w, x) + 1
			f.Data[f.idx(x, y)] = bicubic(grid, gx, gy)
		}
	}

	f.Normalize()
	return f, nil
}

// bicubic samples the grid at a continuous position using Catmull-Rom
// interpolation, clamping the 4×4 support at the grid edges.
func bicubic(g *Field, px, py float64) float64 {
	x0 := int(math.Floor(px))
	y0 := int(math.Floor(py))
	fx := px - float64(x0)
	fy := py - float64(y0)

	var rows [4]float64
	for j := 0; j < 4; j++ {
		yy := clampInt(y0-1+j, 0, g.H-1)
		var cols [4]float64
		for i := 0; i < 4; i++ {
			xx := clampInt(x0-1+i, 0, g.W-1)
			cols[i] = g.Data[yy*g.W+xx]
		}
		rows[j] = catmullRom(cols, fx)
	}
	return catmullRom(rows, fy)
}

func catmullRom(p [4]float64, t float64) float64 {
	return p[1] + 0.5*t*(p[2]-p[0]+
		t*(2*p[0]-5*p[1]+4*p[2]-p[3]+
			t*(3*(p[1]-p[2])+p[3]-p[0])))
}
