package system

import (
	"image"
	"log"

	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/mesh"
	"github.com/milk9111/zombieslice/slicer"
	"github.com/milk9111/zombieslice/spawn"
)

// SpawnConfig describes the zombies the spawner creates.
type SpawnConfig struct {
	Texture  string
	Frames   []image.Rectangle
	Shape    mesh.ShapeID
	Width    float64
	Height   float64
	SpawnZ   float64
	FloorY   float64
	Lanes    []float64
	MaxAlive int
}

// SpawnSystem asks the director for a plan whenever its timer runs out and
// puts a walking zombie on the far end of a lane.
type SpawnSystem struct {
	Config   SpawnConfig
	Director *spawn.Director
	Round    *slicer.Round
	Debug    bool

	timer   float64
	spawned int
}

func NewSpawnSystem(cfg SpawnConfig, director *spawn.Director, round *slicer.Round) *SpawnSystem {
	return &SpawnSystem{Config: cfg, Director: director, Round: round}
}

// Reset makes the next Update spawn immediately.
func (s *SpawnSystem) Reset() {
	s.timer = 0
	s.spawned = 0
}

// Spawned returns how many zombies were created since the last Reset.
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Director == nil || s.Round == nil || s.Round.Over() {
		return
	}

	s.timer -= w.DeltaTime()
	if s.timer > 0 {
		return
	}

	alive := s.alive(w)
	plan := s.Director.Plan(spawn.Input{
		Score:    s.Round.Score,
		Elapsed:  s.Round.Clock,
		Alive:    alive,
		MaxAlive: s.Config.MaxAlive,
		Lives:    s.Round.Lives,
	})
	s.timer = plan.Interval
	if s.Config.MaxAlive > 0 && alive >= s.Config.MaxAlive {
		return
	}

	e := s.spawn(w, plan)
	if s.Debug {
		log.Printf("spawn: round=%s entity=%v lane=%d speed=%.2f next=%.2fs", s.Round.ID, e, plan.Lane, plan.Speed, plan.Interval)
	}
}

func (s *SpawnSystem) alive(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.WalkerComponent.Kind(), func(e ecs.Entity, _ *component.Walker) {
		if sl, ok := ecs.Get(w, e, component.SliceableComponent.Kind()); ok && sl.State == component.SliceActive {
			n++
		}
	})
	return n
}

func (s *SpawnSystem) spawn(w *ecs.World, plan spawn.Plan) ecs.Entity {
	cfg := s.Config
	x := 0.0
	if len(cfg.Lanes) > 0 {
		lane := plan.Lane % len(cfg.Lanes)
		if lane < 0 {
			lane += len(cfg.Lanes)
		}
		x = cfg.Lanes[lane]
	}
	var frame image.Rectangle
	if len(cfg.Frames) > 0 {
		frame = cfg.Frames[s.spawned%len(cfg.Frames)]
	}
	scale := plan.Scale
	if scale <= 0 {
		scale = 1
	}

	e := slicer.SpawnSurface(w, slicer.Surface{
		Texture: cfg.Texture,
		Frame:   frame,
		Shape:   cfg.Shape,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Transform: component.Transform{
			X:     x,
			Y:     cfg.FloorY + cfg.Height*scale/2,
			Z:     cfg.SpawnZ,
			Scale: scale,
		},
	})
	_ = ecs.Add(w, e, component.WalkerComponent.Kind(), &component.Walker{Speed: plan.Speed})
	s.spawned++
	return e
}
