package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// parallelEpsilon is the direction magnitude below which an axis is
	// treated as exactly horizontal or vertical.
	parallelEpsilon = 1e-6
	minExitT        = 1e-6
	maxExitT        = 1e6
)

// IntersectUnitSquare returns where the ray from start along dir leaves the
// unit square. start must lie inside or on the boundary. It uses slab
// clipping: per axis entry/exit times are sorted and intersected, then the
// smallest strictly positive time is chosen. A miss, a ray pointing away, or
// a time beyond maxExitT reports false.
func IntersectUnitSquare(start, dir cp.Vector) (cp.Vector, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	minAxis, maxAxis := -1, -1
	var minBound, maxBound float64

	for axis := 0; axis < 2; axis++ {
		s, d := start.X, dir.X
		if axis == 1 {
			s, d = start.Y, dir.Y
		}
		if math.Abs(d) < parallelEpsilon {
			if s < 0 || s > 1 {
				return cp.Vector{}, false
			}
			continue
		}
		t0, b0 := (0-s)/d, 0.0
		t1, b1 := (1-s)/d, 1.0
		if t0 > t1 {
			t0, t1 = t1, t0
			b0, b1 = b1, b0
		}
		if t0 > tMin {
			tMin, minAxis, minBound = t0, axis, b0
		}
		if t1 < tMax {
			tMax, maxAxis, maxBound = t1, axis, b1
		}
	}

	if tMin > tMax {
		return cp.Vector{}, false
	}

	t, axis, bound := tMin, minAxis, minBound
	if t < minExitT {
		t, axis, bound = tMax, maxAxis, maxBound
	}
	if t <= 0 || t > maxExitT || math.IsInf(t, 0) || math.IsNaN(t) {
		return cp.Vector{}, false
	}

	p := start.Add(dir.Mult(t))
	// snap the clipping axis onto the boundary and absorb rounding on the other
	switch axis {
	case 0:
		p.X = bound
	case 1:
		p.Y = bound
	}
	p.X = clamp01(p.X)
	p.Y = clamp01(p.Y)
	return p, true
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
