package system

import (
	"log"

	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
)

// EventZombieEscaped is pushed when a walker reaches the near plane. Data is
// the escaped ecs.Entity, which is already destroyed.
const EventZombieEscaped = "zombie_escaped"

// WalkerSystem walks active sliceables toward the viewer and retires the ones
// that cross the near plane.
type WalkerSystem struct {
	NearZ   float64
	BobRate float64
	Debug   bool
}

func NewWalkerSystem(nearZ float64) *WalkerSystem {
	return &WalkerSystem{NearZ: nearZ, BobRate: 8}
}

func (s *WalkerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach(w, component.WalkerComponent.Kind(), func(e ecs.Entity, walker *component.Walker) {
		sl, ok := ecs.Get(w, e, component.SliceableComponent.Kind())
		if !ok || sl.State != component.SliceActive {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		t.Z += walker.Speed * dt
		walker.Bob += s.BobRate * dt
		if t.Z < s.NearZ {
			return
		}

		sl.State = component.SliceRetired
		ecs.DestroyEntity(w, e)
		w.Events().Push(ecs.Event{Type: EventZombieEscaped, Data: e})
		if s.Debug {
			log.Printf("walker: entity=%v escaped at z=%.2f", e, t.Z)
		}
	})
}
