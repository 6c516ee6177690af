// Package spawn decides when, where and how fast zombies appear, driven by a
// tengo script.
package spawn

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const dispatchScript = `
__out := plan(__engine)
`

// minInterval keeps a misbehaving script from flooding the scene.
const minInterval = 0.2

// Input is the round progress handed to the script.
type Input struct {
	Score    int
	Elapsed  float64
	Alive    int
	MaxAlive int
	Lives    int
}

// Plan describes the next spawn.
type Plan struct {
	Interval float64
	Speed    float64
	Scale    float64
	Lane     int
}

type Director struct {
	Fallback Plan
	Lanes    int
	Debug    bool

	script   string
	compiled *tengo.Compiled
	rng      *rand.Rand
}

// NewDirector returns a director that answers with fallback until a script
// is loaded, and whenever the script fails.
func NewDirector(fallback Plan, lanes int, rng *rand.Rand) *Director {
	if lanes <= 0 {
		lanes = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Director{Fallback: fallback, Lanes: lanes, rng: rng}
}

// Load compiles a script by name through LoadScript.
func (d *Director) Load(name string) error {
	src, err := LoadScript(name)
	if err != nil {
		return fmt.Errorf("spawn: load %s: %w", name, err)
	}
	if err := d.LoadSource(src); err != nil {
		return fmt.Errorf("spawn: %s: %w", name, err)
	}
	d.script = name
	return nil
}

// Reload recompiles the last script loaded by name. On failure the previous
// compiled script stays in use.
func (d *Director) Reload() error {
	if d.script == "" {
		return nil
	}
	return d.Load(d.script)
}

func (d *Director) LoadSource(src []byte) error {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(dispatchScript)...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	d.compiled = compiled
	return nil
}

// Loaded reports whether a script is compiled.
func (d *Director) Loaded() bool {
	return d.compiled != nil
}

// Plan runs the script for the next spawn.
func (d *Director) Plan(in Input) Plan {
	if d.compiled == nil {
		return d.wrap(d.Fallback)
	}

	out, err := d.run(in)
	if err != nil {
		if d.Debug {
			log.Printf("spawn: script %s error: %v", d.script, err)
		}
		return d.wrap(d.Fallback)
	}
	return out
}

func (d *Director) run(in Input) (Plan, error) {
	if err := d.compiled.Set("__engine", d.engine(in)); err != nil {
		return Plan{}, err
	}
	if err := d.compiled.Run(); err != nil {
		return Plan{}, err
	}

	v := d.compiled.Get("__out")
	if v.ValueType() != "map" {
		return Plan{}, fmt.Errorf("plan returned %s, want map", v.ValueType())
	}
	m := v.Map()

	p := d.Fallback
	if f, ok := number(m["interval"]); ok {
		p.Interval = f
	}
	if f, ok := number(m["speed"]); ok && f > 0 {
		p.Speed = f
	}
	if f, ok := number(m["scale"]); ok && f > 0 {
		p.Scale = f
	}
	if f, ok := number(m["lane"]); ok {
		p.Lane = int(f)
	}
	return d.wrap(p), nil
}

func (d *Director) engine(in Input) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"score":     &tengo.Int{Value: int64(in.Score)},
		"elapsed":   &tengo.Float{Value: in.Elapsed},
		"alive":     &tengo.Int{Value: int64(in.Alive)},
		"max_alive": &tengo.Int{Value: int64(in.MaxAlive)},
		"lives":     &tengo.Int{Value: int64(in.Lives)},
		"lanes":     &tengo.Int{Value: int64(d.Lanes)},
	}
	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: d.rng.Float64()}, nil
	}}
	return &tengo.ImmutableMap{Value: values}
}

func (d *Director) wrap(p Plan) Plan {
	if p.Interval < minInterval {
		p.Interval = minInterval
	}
	p.Lane %= d.Lanes
	if p.Lane < 0 {
		p.Lane += d.Lanes
	}
	return p
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
