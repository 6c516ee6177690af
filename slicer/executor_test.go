package slicer

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor() *Executor {
	return NewExecutor(DefaultParams(), rand.New(rand.NewPCG(7, 11)))
}

func spawnSquare(w *ecs.World, tr component.Transform) ecs.Entity {
	return SpawnSurface(w, Surface{Texture: "zombie", Shape: 1, Width: 1, Height: 1, Transform: tr})
}

func mustCut(t *testing.T, a, b cp.Vector) geom.CutLine {
	t.Helper()
	line, err := geom.NewCutLine(a, b)
	require.NoError(t, err)
	return line
}

func pieceCount(w *ecs.World) int {
	return len(w.Query(component.BodyComponent.Kind(), component.SliceMaskComponent.Kind()))
}

func TestSliceHorizontalCut(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	target := spawnSquare(w, component.Transform{Scale: 1})

	cut := mustCut(t, cp.Vector{X: 0.2, Y: 0.5}, cp.Vector{X: 0.8, Y: 0.5})
	res, ok := x.Slice(w, round, target, cut)
	require.True(t, ok)

	assert.False(t, w.IsAlive(target), "original must be retired")
	assert.Equal(t, 2, pieceCount(w))

	n := cut.Normal()
	assert.InDelta(t, 0, n.X, 1e-12)
	assert.InDelta(t, 1, n.Y, 1e-12)

	top, bottom := res.Pieces[0], res.Pieces[1]
	topMask, ok := ecs.Get(w, top, component.SliceMaskComponent.Kind())
	require.True(t, ok)
	bottomMask, ok := ecs.Get(w, bottom, component.SliceMaskComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1, topMask.SideToKeep)
	assert.Equal(t, -1, bottomMask.SideToKeep)

	upper := cp.Vector{X: 0.5, Y: 0.8}
	lower := cp.Vector{X: 0.5, Y: 0.2}
	assert.True(t, geom.KeepSide(upper, topMask.LineStart, topMask.LineEnd, topMask.SideToKeep))
	assert.False(t, geom.KeepSide(lower, topMask.LineStart, topMask.LineEnd, topMask.SideToKeep))
	assert.True(t, geom.KeepSide(lower, bottomMask.LineStart, bottomMask.LineEnd, bottomMask.SideToKeep))
	assert.False(t, geom.KeepSide(upper, bottomMask.LineStart, bottomMask.LineEnd, bottomMask.SideToKeep))

	p := DefaultParams()
	topTr, _ := ecs.Get(w, top, component.TransformComponent.Kind())
	bottomTr, _ := ecs.Get(w, bottom, component.TransformComponent.Kind())
	assert.InDelta(t, p.Separation, topTr.Y, 1e-12)
	assert.InDelta(t, -p.Separation, bottomTr.Y, 1e-12)

	topBody, _ := ecs.Get(w, top, component.BodyComponent.Kind())
	bottomBody, _ := ecs.Get(w, bottom, component.BodyComponent.Kind())
	assert.InDelta(t, p.Force, topBody.Velocity.Y, 1e-12)
	assert.InDelta(t, -p.Force, bottomBody.Velocity.Y, 1e-12)
	assert.Equal(t, component.BodyAirborne, topBody.Phase)
	for _, b := range []*component.Body{topBody, bottomBody} {
		speed := math.Abs(b.RotationSpeed)
		assert.GreaterOrEqual(t, speed, p.RotationSpeedMin)
		assert.LessOrEqual(t, speed, p.RotationSpeedMax)
	}

	topSprite, _ := ecs.Get(w, top, component.SpriteComponent.Kind())
	assert.Equal(t, "zombie", topSprite.Texture)
	assert.EqualValues(t, 1, topSprite.Shape, "pieces share the parent shape handle")
}

func TestSliceEffects(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	target := SpawnSurface(w, Surface{
		Texture:   "zombie",
		Width:     1,
		Height:    1.6,
		Transform: component.Transform{X: 2, Y: 1, Z: -5, Scale: 2},
	})

	cut := mustCut(t, cp.Vector{X: 0.5, Y: 0.75}, cp.Vector{X: 1, Y: 0.75})
	res, ok := x.Slice(w, round, target, cut)
	require.True(t, ok)
	require.Len(t, res.Effects, 4)

	assert.Equal(t, ScoreDelta{Amount: 50}, res.Effects[0])
	assert.Equal(t, PlaySound{Name: "cut"}, res.Effects[1])

	spawn, ok := res.Effects[2].(SpawnParticles)
	require.True(t, ok)
	assert.InDelta(t, 2.5, spawn.Origin.X, 1e-12)
	assert.InDelta(t, 1.8, spawn.Origin.Y, 1e-12)
	assert.InDelta(t, -5, spawn.Origin.Z, 1e-12)
	assert.Equal(t, 18, spawn.Count)
	assert.Equal(t, 2.0, spawn.Scale)
	assert.InDelta(t, 1, spawn.Direction.X, 1e-12)
	assert.InDelta(t, 1, spawn.Normal.Y, 1e-12)

	assert.Equal(t, Retire{Entity: target}, res.Effects[3])

	// the host applies the score, the executor does not
	assert.Equal(t, 0, round.Score)
}

func TestSliceRotatedTargetPushesAlongKeptSide(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	tr := component.Transform{X: 1, Y: 1, Rotation: math.Pi / 2, Scale: 1.5}
	target := SpawnSurface(w, Surface{Width: 1, Height: 1.6, Transform: tr})

	cut := mustCut(t, cp.Vector{X: 0.1, Y: 0.2}, cp.Vector{X: 0.9, Y: 0.7})
	res, ok := x.Slice(w, round, target, cut)
	require.True(t, ok)

	linePoint := UVToWorld(cut.Midpoint(), tr, 1, 1.6).XY()
	for i, side := range pieceSides {
		body, ok := ecs.Get(w, res.Pieces[i], component.BodyComponent.Kind())
		require.True(t, ok)

		// a UV point strictly on this piece's kept side
		keptUV := cut.Midpoint().Add(cut.Normal().Mult(0.1 * float64(side)))
		require.True(t, geom.KeepSide(keptUV, cut.Start, cut.End, side))

		keptWorld := UVToWorld(keptUV, tr, 1, 1.6).XY()
		assert.Greater(t, body.Velocity.Dot(keptWorld.Sub(linePoint)), 0.0,
			"piece %d must fly toward its visible half", i)
	}
}

func TestSliceTwiceRetiresOnce(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	target := spawnSquare(w, component.Transform{Scale: 1})
	cut := mustCut(t, cp.Vector{X: 0, Y: 0.5}, cp.Vector{X: 1, Y: 0.5})

	_, ok := x.Slice(w, round, target, cut)
	require.True(t, ok)

	round.Advance(1)
	_, ok = x.Slice(w, round, target, cut)
	assert.False(t, ok, "stale handle must not slice again")
	assert.Equal(t, 2, pieceCount(w))

	// a piece is not sliceable either
	pieces := w.Query(component.BodyComponent.Kind())
	_, ok = x.Slice(w, round, pieces[0], cut)
	assert.False(t, ok)
	assert.Equal(t, 2, pieceCount(w))
}

func TestSliceNotActive(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	target := spawnSquare(w, component.Transform{})
	sl, _ := ecs.Get(w, target, component.SliceableComponent.Kind())
	sl.State = component.SliceSliced

	cut := mustCut(t, cp.Vector{X: 0, Y: 0.5}, cp.Vector{X: 1, Y: 0.5})
	_, ok := x.Slice(w, round, target, cut)
	assert.False(t, ok)
	assert.True(t, w.IsAlive(target))

	_, ok = x.Slice(nil, round, target, cut)
	assert.False(t, ok)
	_, ok = x.Slice(w, round, 0, cut)
	assert.False(t, ok)
}

func TestSliceCooldown(t *testing.T) {
	cases := []struct {
		name   string
		gap    float64
		second bool
	}{
		{"within_cooldown", 0.1, false},
		{"after_cooldown", 0.25, true},
		{"well_after", 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			round := NewRound(3, 0.2)
			x := newTestExecutor()
			a := spawnSquare(w, component.Transform{})
			b := spawnSquare(w, component.Transform{X: 3})
			cut := mustCut(t, cp.Vector{X: 0, Y: 0.5}, cp.Vector{X: 1, Y: 0.5})

			_, ok := x.Slice(w, round, a, cut)
			require.True(t, ok)

			round.Advance(c.gap)
			_, ok = x.Slice(w, round, b, cut)
			assert.Equal(t, c.second, ok)
			assert.Equal(t, !c.second, w.IsAlive(b))
		})
	}
}

func TestSliceCooldownRetry(t *testing.T) {
	w := ecs.NewWorld()
	round := NewRound(3, 0.2)
	x := newTestExecutor()
	a := spawnSquare(w, component.Transform{})
	b := spawnSquare(w, component.Transform{X: 3})
	cut := mustCut(t, cp.Vector{X: 0, Y: 0.5}, cp.Vector{X: 1, Y: 0.5})

	_, ok := x.Slice(w, round, a, cut)
	require.True(t, ok)

	round.Advance(0.1)
	_, ok = x.Slice(w, round, b, cut)
	require.False(t, ok)

	round.Advance(0.15)
	_, ok = x.Slice(w, round, b, cut)
	require.True(t, ok)
	assert.Equal(t, 4, pieceCount(w))
}

func TestUVToWorld(t *testing.T) {
	tr := component.Transform{X: 1, Y: 2, Z: -3, Rotation: math.Pi / 2, Scale: 2}
	p := UVToWorld(cp.Vector{X: 1, Y: 0.5}, tr, 1, 1)
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, 3, p.Y, 1e-12)
	assert.InDelta(t, -3, p.Z, 1e-12)
}
