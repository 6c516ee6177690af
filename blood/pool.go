package blood

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/geom"
)

// Pool is a fixed set of particle slots with a free-list stack, so acquire
// and release are O(1) and the live count never exceeds the capacity.
type Pool struct {
	Params Params

	slots []Particle
	free  []int
	rng   *rand.Rand
}

func NewPool(p Params, rng *rand.Rand) *Pool {
	if p.PoolSize <= 0 {
		p.PoolSize = DefaultParams().PoolSize
	}
	if p.Variants <= 0 {
		p.Variants = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pool := &Pool{
		Params: p,
		slots:  make([]Particle, p.PoolSize),
		free:   make([]int, 0, p.PoolSize),
		rng:    rng,
	}
	pool.Clear()
	return pool
}

// Cap returns the number of slots.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Free returns the number of unused slots.
func (p *Pool) Free() int {
	return len(p.free)
}

// Live returns the number of active particles.
func (p *Pool) Live() int {
	return len(p.slots) - len(p.free)
}

// Clear releases every slot.
func (p *Pool) Clear() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.slots[i] = Particle{}
		p.free = append(p.free, i)
	}
}

// Each calls fn for every active particle. fn must not retain the pointer.
func (p *Pool) Each(fn func(*Particle)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(&p.slots[i])
		}
	}
}

func (p *Pool) acquire() (*Particle, bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.slots[idx] = Particle{Active: true}
	return &p.slots[idx], true
}

func (p *Pool) release(idx int) {
	if !p.slots[idx].Active {
		return
	}
	p.slots[idx] = Particle{}
	p.free = append(p.free, idx)
}

// Emit spawns a burst at origin. The first count/3 particles fly to the back
// wall along dir, the rest scatter to the floor around ±normal. Requests
// beyond the free slots are dropped. It returns how many were spawned.
func (p *Pool) Emit(origin geom.Vec3, dir, normal cp.Vector, scale float64, count int) int {
	if count <= 0 {
		return 0
	}
	if scale <= 0 {
		scale = 1
	}
	wall := count / 3
	spawned := 0
	for i := 0; i < count; i++ {
		pt, ok := p.acquire()
		if !ok {
			break
		}
		if i < wall {
			p.initWall(pt, origin, dir, scale)
		} else {
			p.initFloor(pt, origin, normal, scale)
		}
		spawned++
	}
	return spawned
}

func (p *Pool) initCommon(pt *Particle, origin geom.Vec3, scale float64, kind Kind) {
	pt.Kind = kind
	pt.Phase = PhaseAirborne
	pt.Variant = p.rng.IntN(p.Params.Variants)
	pt.Position = origin
	pt.Scale = scale
	pt.Rotation = p.rng.Float64() * 2 * math.Pi
	pt.RotationSpeed = common.RandSign(p.rng) * p.rng.Float64() * p.Params.RotationSpeed
	pt.Life = common.RandRange(p.rng, p.Params.LifeMin, p.Params.LifeMax)
	pt.Opacity = p.Params.AirborneOpacity
}

func (p *Pool) initFloor(pt *Particle, origin geom.Vec3, normal cp.Vector, scale float64) {
	p.initCommon(pt, origin, scale, KindFloor)
	base := normal
	if p.rng.IntN(2) == 0 {
		base = base.Neg()
	}
	d := jitter(p.rng, base, p.Params.FloorSpread*math.Pi)
	speed := common.RandRange(p.rng, p.Params.FloorSpeedMin, p.Params.FloorSpeedMax) * scale
	pt.Velocity = geom.Vec3{X: d.X * speed, Y: d.Y * speed}
}

func (p *Pool) initWall(pt *Particle, origin geom.Vec3, dir cp.Vector, scale float64) {
	p.initCommon(pt, origin, scale, KindWall)
	d := jitter(p.rng, dir, p.Params.WallSpread*math.Pi)
	speed := common.RandRange(p.rng, p.Params.WallSpeedMin, p.Params.WallSpeedMax) * scale
	pt.Velocity = geom.Vec3{X: d.X * speed, Y: d.Y * speed, Z: -p.Params.WallDepthSpeed}
}

// jitter rotates the unit direction of base by a uniform angle in
// [-spread, spread]. A zero base picks a random heading.
func jitter(rng *rand.Rand, base cp.Vector, spread float64) cp.Vector {
	angle := common.RandRange(rng, -spread, spread)
	if base.LengthSq() == 0 {
		return cp.ForAngle(rng.Float64() * 2 * math.Pi)
	}
	return base.Normalize().Rotate(cp.ForAngle(angle))
}
