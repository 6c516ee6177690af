// Package geom holds the texture-space geometry of a cut: the unit square,
// cut lines, and the per-pixel keep test shared by the CPU and GPU paths.
package geom

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

// MinCutLength is the shortest accepted cut, in texture units.
const MinCutLength = 0.001

// roundingSlack is how far outside the unit square a coordinate may drift
// through float error and still be clamped back in.
const roundingSlack = 1e-6

var (
	ErrDegenerateCut = errors.New("geom: cut line too short")
	ErrOutsideSquare = errors.New("geom: cut point outside unit square")
)

// UnitSquare is texture space.
var UnitSquare = cp.BB{L: 0, B: 0, R: 1, T: 1}

// CutLine is a validated segment in texture space.
type CutLine struct {
	Start cp.Vector
	End   cp.Vector
}

// NewCutLine clamps rounding error at the square's edges and validates the
// result: both points inside [0,1]² and at least MinCutLength apart.
func NewCutLine(start, end cp.Vector) (CutLine, error) {
	start = snapToSquare(start)
	end = snapToSquare(end)
	if !InUnitSquare(start) || !InUnitSquare(end) {
		return CutLine{}, ErrOutsideSquare
	}
	if start.Distance(end) <= MinCutLength {
		return CutLine{}, ErrDegenerateCut
	}
	return CutLine{Start: start, End: end}, nil
}

// InUnitSquare reports whether p lies in [0,1]², boundary included.
func InUnitSquare(p cp.Vector) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	return UnitSquare.ContainsVect(p)
}

func (c CutLine) Length() float64 {
	return c.Start.Distance(c.End)
}

// Direction is the unit vector from Start to End.
func (c CutLine) Direction() cp.Vector {
	d := c.End.Sub(c.Start)
	l := d.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return d.Mult(1 / l)
}

// Normal is the unit left-hand perpendicular of Direction. Side +1 of the
// keep test is the half-plane this normal points into.
func (c CutLine) Normal() cp.Vector {
	return c.Direction().Perp()
}

func (c CutLine) Midpoint() cp.Vector {
	return c.Start.Lerp(c.End, 0.5)
}

// SignedDistance is the perpendicular distance of p from the line, positive
// on the Normal side.
func (c CutLine) SignedDistance(p cp.Vector) float64 {
	return p.Sub(c.Start).Dot(c.Normal())
}

func snapToSquare(p cp.Vector) cp.Vector {
	return cp.Vector{X: snapAxis(p.X), Y: snapAxis(p.Y)}
}

func snapAxis(v float64) float64 {
	if v < 0 && v >= -roundingSlack {
		return 0
	}
	if v > 1 && v <= 1+roundingSlack {
		return 1
	}
	return v
}
