package system

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/slicer"
	"github.com/milk9111/zombieslice/spawn"
)

func newTestSpawner(maxAlive int) (*SpawnSystem, *slicer.Round) {
	round := slicer.NewRound(3, 0.2)
	director := spawn.NewDirector(spawn.Plan{Interval: 1, Speed: 2, Scale: 1, Lane: 2}, 3, rand.New(rand.NewPCG(1, 1)))
	cfg := SpawnConfig{
		Texture:  "zombie",
		Frames:   []image.Rectangle{image.Rect(0, 0, 10, 20), image.Rect(10, 0, 20, 20)},
		Shape:    1,
		Width:    1,
		Height:   2,
		SpawnZ:   -16,
		FloorY:   -1.5,
		Lanes:    []float64{-2, 0, 2},
		MaxAlive: maxAlive,
	}
	return NewSpawnSystem(cfg, director, round), round
}

func walkers(w *ecs.World) []ecs.Entity {
	return w.Query(component.WalkerComponent.Kind())
}

func TestSpawnerSpawnsOnTimer(t *testing.T) {
	s, _ := newTestSpawner(10)
	w := ecs.NewWorld()

	w.SetDeltaTime(0)
	s.Update(w)
	if n := len(walkers(w)); n != 1 {
		t.Fatalf("first update should spawn immediately, have %d", n)
	}

	w.SetDeltaTime(0.5)
	s.Update(w)
	if n := len(walkers(w)); n != 1 {
		t.Fatalf("spawned before the interval elapsed, have %d", n)
	}
	s.Update(w)
	if n := len(walkers(w)); n != 2 {
		t.Fatalf("expected a second spawn after the interval, have %d", n)
	}
	if s.Spawned() != 2 {
		t.Fatalf("Spawned() = %d, want 2", s.Spawned())
	}
}

func TestSpawnerPlacement(t *testing.T) {
	s, _ := newTestSpawner(10)
	w := ecs.NewWorld()
	s.Update(w)

	ents := walkers(w)
	if len(ents) != 1 {
		t.Fatalf("expected 1 walker, got %d", len(ents))
	}
	e := ents[0]

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 2 || tr.Z != -16 || tr.Y != -0.5 || tr.Scale != 1 {
		t.Fatalf("transform = %+v", *tr)
	}
	walker, _ := ecs.Get(w, e, component.WalkerComponent.Kind())
	if walker.Speed != 2 {
		t.Fatalf("speed = %v, want 2", walker.Speed)
	}
	sl, _ := ecs.Get(w, e, component.SliceableComponent.Kind())
	if sl.State != component.SliceActive || sl.Width != 1 || sl.Height != 2 {
		t.Fatalf("sliceable = %+v", *sl)
	}
	sp, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sp.Texture != "zombie" || sp.Frame != image.Rect(0, 0, 10, 20) || sp.Shape != 1 {
		t.Fatalf("sprite = %+v", *sp)
	}
}

func TestSpawnerRespectsMaxAlive(t *testing.T) {
	s, _ := newTestSpawner(2)
	w := ecs.NewWorld()
	w.SetDeltaTime(1)

	for i := 0; i < 5; i++ {
		s.Update(w)
	}
	if n := len(walkers(w)); n != 2 {
		t.Fatalf("expected the cap of 2 walkers, have %d", n)
	}

	ecs.DestroyEntity(w, walkers(w)[0])
	s.Update(w)
	if n := len(walkers(w)); n != 2 {
		t.Fatalf("expected a replacement spawn, have %d", n)
	}
}

func TestSpawnerStopsWhenRoundOver(t *testing.T) {
	s, round := newTestSpawner(10)
	w := ecs.NewWorld()
	for !round.LoseLife() {
	}

	s.Update(w)
	if n := len(walkers(w)); n != 0 {
		t.Fatalf("no spawns after game over, have %d", n)
	}
}
