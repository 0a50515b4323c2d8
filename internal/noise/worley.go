package noise

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/dgravesa/go-parallel/parallel"
)

// Worley produces cellular noise: the distance from each pixel to the
// nth-closest of nPoints uniformly scattered seed points, inverted and
// normalized so pixels near a seed are brighter.
//
// This is the most expensive primitive (O(w·h·nPoints)); rows are processed
// in parallel. All randomness is consumed up front, so the parallel fill is
// deterministic for a given seed.
func Worley(rng *rand.Rand, w, h, nPoints, nthClosest int) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}
	if nPoints < 1 {
		return nil, fmt.Errorf("worley: n_points must be positive, got %d", nPoints)
	}
	if nthClosest < 1 || nthClosest > nPoints {
		return nil, fmt.Errorf("worley: nth_closest %d out of range [1, %d]", nthClosest, nPoints)
	}

	px := make([]float64, nPoints)
	py := make([]float64, nPoints)
	for i := range px {
		px[i] = float64(rng.Intn(w))
	}
	for i := range py {
		py[i] = float64(rng.Intn(h))
	}

	parallel.For(h, func(y, _ int) {
		dists := make([]float64, nPoints)
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)
			if nthClosest == 1 {
				best := math.Inf(1)
				for i := 0; i < nPoints; i++ {
					dx := fx - px[i]
					dy := fy - py[i]
					if d := dx*dx + dy*dy; d < best {
						best = d
					}
				}
				f.Data[y*w+x] = math.Sqrt(best)
				continue
			}
			for i := 0; i < nPoints; i++ {
				dx := fx - px[i]
				dy := fy - py[i]
				dists[i] = math.Sqrt(dx*dx + dy*dy)
			}
			sort.Float64s(dists)
			f.Data[y*w+x] = dists[nthClosest-1]
		}
	})

	_, max := f.MinMax()
	if max == 0 {
		// Every pixel sits on a seed point.
		for i := range f.Data {
			f.Data[i] = 1
		}
		return f, nil
	}
	inv := 1.0 / max
	for i, v := range f.Data {
		f.Data[i] = 1 - v*inv
	}
	return f, nil
}
