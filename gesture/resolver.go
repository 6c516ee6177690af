// Package gesture turns pointer and hand-tracking motion into texture-space
// cut lines against a single target surface.
package gesture

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/geom"
)

var (
	ErrStartMissed   = errors.New("gesture: start point missed the target")
	ErrZeroDirection = errors.New("gesture: motion has no direction")
	ErrNoExit        = errors.New("gesture: extended cut never leaves the surface")
)

// Hit is where a screen point struck a sliceable surface.
type Hit struct {
	Entity ecs.Entity
	UV     cp.Vector
}

// HitTestFunc reports the surface under an NDC point, if any. The resolver
// never performs spatial queries of its own.
type HitTestFunc func(ndc cp.Vector) (Hit, bool)

// Resolver converts a pair of NDC points into a cut line on a target.
type Resolver struct {
	// Aspect is the camera's width/height ratio. It scales the vertical
	// motion when the end point has to be extrapolated in texture space.
	Aspect float64
}

func NewResolver(aspect float64) *Resolver {
	if aspect <= 0 {
		aspect = 1
	}
	return &Resolver{Aspect: aspect}
}

// UVDirection approximates a texture-space direction from NDC motion by
// scaling the vertical axis by the aspect ratio. It is not a perspective
// correct unprojection and is expected to drift on rotated or off-centre
// targets.
func (r *Resolver) UVDirection(motion cp.Vector) cp.Vector {
	aspect := 1.0
	if r != nil && r.Aspect > 0 {
		aspect = r.Aspect
	}
	return cp.Vector{X: motion.X, Y: motion.Y * aspect}
}

// Resolve applies the hit rules in order: both endpoints on target use their
// UVs; only the start on target extends the cut along the motion to the
// texture boundary; a start off target rejects.
func (r *Resolver) Resolve(target ecs.Entity, start, end cp.Vector, startHit, endHit *Hit) (geom.CutLine, error) {
	if startHit == nil || startHit.Entity != target || !target.Valid() {
		return geom.CutLine{}, ErrStartMissed
	}

	startUV := startHit.UV
	var endUV cp.Vector
	if endHit != nil && endHit.Entity == target {
		endUV = endHit.UV
	} else {
		dir := r.UVDirection(end.Sub(start))
		if dir.LengthSq() == 0 {
			return geom.CutLine{}, ErrZeroDirection
		}
		exit, ok := geom.IntersectUnitSquare(startUV, dir)
		if !ok {
			return geom.CutLine{}, ErrNoExit
		}
		endUV = exit
	}

	line, err := geom.NewCutLine(startUV, endUV)
	if err != nil {
		return geom.CutLine{}, fmt.Errorf("gesture: %w", err)
	}
	return line, nil
}

// Cut hit-tests both endpoints, picks the surface under start as the
// target, and resolves the cut against it.
func (r *Resolver) Cut(hitTest HitTestFunc, start, end cp.Vector) (ecs.Entity, geom.CutLine, error) {
	if hitTest == nil {
		return 0, geom.CutLine{}, ErrStartMissed
	}
	sh, ok := hitTest(start)
	if !ok {
		return 0, geom.CutLine{}, ErrStartMissed
	}
	var endHit *Hit
	if eh, ok := hitTest(end); ok {
		endHit = &eh
	}
	line, err := r.Resolve(sh.Entity, start, end, &sh, endHit)
	if err != nil {
		return 0, geom.CutLine{}, err
	}
	return sh.Entity, line, nil
}
