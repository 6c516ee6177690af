package slicer

import (
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/geom"
)

// Params tunes the split of a sliced surface.
type Params struct {
	// Cooldown is the minimum spacing in seconds between executed slices.
	Cooldown    float64 `yaml:"cooldown"`
	ScorePerCut int     `yaml:"score_per_cut"`
	// Separation offsets each half along the cut normal, times scale.
	Separation float64 `yaml:"separation"`
	// Force is the outward speed per tick given to each half, times scale.
	Force            float64 `yaml:"force"`
	RotationSpeedMin float64 `yaml:"rotation_speed_min"`
	RotationSpeedMax float64 `yaml:"rotation_speed_max"`
	Particles        int     `yaml:"particles"`
	CutSound         string  `yaml:"cut_sound"`
}

func DefaultParams() Params {
	return Params{
		Cooldown:         0.2,
		ScorePerCut:      50,
		Separation:       0.05,
		Force:            0.04,
		RotationSpeedMin: 0.02,
		RotationSpeedMax: 0.06,
		Particles:        18,
		CutSound:         "cut",
	}
}

// Result describes an executed slice.
type Result struct {
	Pieces  [2]ecs.Entity
	Cut     geom.CutLine
	Effects []Effect
}

// Executor splits sliceable entities into two kept-half pieces.
type Executor struct {
	Params Params
	Debug  bool

	rng *rand.Rand
}

func NewExecutor(p Params, rng *rand.Rand) *Executor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Executor{Params: p, rng: rng}
}

// pieceSides pairs each kept side with the direction it is pushed along the
// cut normal. Side +1 keeps the half the normal points into.
var pieceSides = [2]int{1, -1}

// Slice retires target and replaces it with two pieces. It is a no-op
// returning false when the handle is stale, the surface is not Active, or
// the round is cooling down.
func (x *Executor) Slice(w *ecs.World, round *Round, target ecs.Entity, cut geom.CutLine) (Result, bool) {
	if x == nil || w == nil || round == nil || !w.IsAlive(target) {
		return Result{}, false
	}
	sl, ok := ecs.Get(w, target, component.SliceableComponent.Kind())
	if !ok || sl.State != component.SliceActive {
		return Result{}, false
	}
	if !round.CanSlice() {
		x.debugf("slicer: round=%s entity=%s rejected: cooldown", round.ID, target)
		return Result{}, false
	}
	tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return Result{}, false
	}
	sprite, ok := ecs.Get(w, target, component.SpriteComponent.Kind())
	if !ok {
		return Result{}, false
	}

	// capture by value before the target's components are dropped
	parent := *tr
	extent := *sl
	look := *sprite
	if parent.Scale == 0 {
		parent.Scale = 1
	}

	sl.State = component.SliceSliced
	x.retire(w, target, sl)

	spin := cp.ForAngle(parent.Rotation)
	normal := cut.Normal().Rotate(spin)
	dir := cut.Direction().Rotate(spin)

	var res Result
	res.Cut = cut
	for i, side := range pieceSides {
		push := normal.Mult(float64(side))
		e := w.CreateEntity()

		pt := parent
		pt.X += push.X * x.Params.Separation * parent.Scale
		pt.Y += push.Y * x.Params.Separation * parent.Scale

		ps := look
		body := &component.Body{
			Velocity:      push.Mult(x.Params.Force * parent.Scale),
			RotationSpeed: common.RandSign(x.rng) * common.RandRange(x.rng, x.Params.RotationSpeedMin, x.Params.RotationSpeedMax),
			Phase:         component.BodyAirborne,
		}
		mask := &component.SliceMask{LineStart: cut.Start, LineEnd: cut.End, SideToKeep: side}

		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &pt)
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &ps)
		_ = ecs.Add(w, e, component.SliceMaskComponent.Kind(), mask)
		_ = ecs.Add(w, e, component.BodyComponent.Kind(), body)
		res.Pieces[i] = e
	}

	round.MarkSliced()
	res.Effects = []Effect{
		ScoreDelta{Amount: x.Params.ScorePerCut},
		PlaySound{Name: x.Params.CutSound},
		SpawnParticles{
			Origin:    UVToWorld(cut.Midpoint(), parent, extent.Width, extent.Height),
			Direction: dir,
			Normal:    normal,
			Scale:     parent.Scale,
			Count:     x.Params.Particles,
		},
		Retire{Entity: target},
	}
	x.debugf("slicer: round=%s entity=%s sliced into %s/%s", round.ID, target, res.Pieces[0], res.Pieces[1])
	return res, true
}

func (x *Executor) retire(w *ecs.World, e ecs.Entity, sl *component.Sliceable) {
	sl.State = component.SliceRetired
	w.DestroyEntity(e)
}

func (x *Executor) debugf(format string, args ...any) {
	if x == nil || !x.Debug {
		return
	}
	log.Printf(format, args...)
}

// UVToWorld maps a texture-space point on a w×h quad through its transform.
func UVToWorld(uv cp.Vector, t component.Transform, w, h float64) geom.Vec3 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	local := cp.Vector{X: (uv.X - 0.5) * w * scale, Y: (uv.Y - 0.5) * h * scale}
	p := local.Rotate(cp.ForAngle(t.Rotation))
	return geom.Vec3{X: t.X + p.X, Y: t.Y + p.Y, Z: t.Z}
}
