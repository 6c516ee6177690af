package spawn

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFallback = Plan{Interval: 2.5, Speed: 1.5, Scale: 1, Lane: 1}

func newTestDirector(t *testing.T) *Director {
	t.Helper()
	d := NewDirector(testFallback, 3, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, d.Load("director.tengo"))
	return d
}

func TestDirectorScriptStart(t *testing.T) {
	d := newTestDirector(t)
	require.True(t, d.Loaded())

	p := d.Plan(Input{MaxAlive: 6, Lives: 3})
	assert.InDelta(t, 2.5, p.Interval, 1e-9)
	assert.InDelta(t, 1.5, p.Speed, 1e-9)
	assert.GreaterOrEqual(t, p.Scale, 0.9)
	assert.Less(t, p.Scale, 1.1)
	assert.GreaterOrEqual(t, p.Lane, 0)
	assert.Less(t, p.Lane, 3)
}

func TestDirectorRampsUp(t *testing.T) {
	d := newTestDirector(t)

	early := d.Plan(Input{Elapsed: 0, MaxAlive: 6})
	late := d.Plan(Input{Elapsed: 45, MaxAlive: 6})
	capped := d.Plan(Input{Elapsed: 500, Score: 10000, MaxAlive: 6})

	assert.Less(t, late.Interval, early.Interval)
	assert.Greater(t, late.Speed, early.Speed)
	assert.InDelta(t, 0.9, capped.Interval, 1e-9)
	assert.InDelta(t, 3.0, capped.Speed, 1e-9)
}

func TestDirectorBacksOffWhenCrowded(t *testing.T) {
	d := newTestDirector(t)

	open := d.Plan(Input{Alive: 1, MaxAlive: 6})
	full := d.Plan(Input{Alive: 6, MaxAlive: 6})
	assert.InDelta(t, open.Interval+1, full.Interval, 1e-9)
}

func TestDirectorLanesCoverRange(t *testing.T) {
	d := newTestDirector(t)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[d.Plan(Input{MaxAlive: 6}).Lane] = true
	}
	assert.Len(t, seen, 3)
}

func TestDirectorFallbacks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Plan
	}{
		{
			name: "runtime error",
			src:  `plan := func(engine) { return 1 / (engine.alive - engine.alive) }`,
			want: testFallback,
		},
		{
			name: "not a map",
			src:  `plan := func(engine) { return 4 }`,
			want: testFallback,
		},
		{
			name: "partial map",
			src:  `plan := func(engine) { return { speed: 9 } }`,
			want: Plan{Interval: 2.5, Speed: 9, Scale: 1, Lane: 1},
		},
		{
			name: "clamped interval and wrapped lane",
			src:  `plan := func(engine) { return { interval: 0.01, lane: -1 } }`,
			want: Plan{Interval: minInterval, Speed: 1.5, Scale: 1, Lane: 2},
		},
		{
			name: "non-positive speed ignored",
			src:  `plan := func(engine) { return { speed: -2, scale: 0, lane: 7 } }`,
			want: Plan{Interval: 2.5, Speed: 1.5, Scale: 1, Lane: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirector(testFallback, 3, rand.New(rand.NewPCG(1, 1)))
			require.NoError(t, d.LoadSource([]byte(tt.src)))
			assert.Equal(t, tt.want, d.Plan(Input{Alive: 2}))
		})
	}
}

func TestDirectorCompileErrorKeepsPrevious(t *testing.T) {
	d := NewDirector(testFallback, 3, nil)
	assert.Equal(t, testFallback, d.Plan(Input{}))

	require.NoError(t, d.LoadSource([]byte(`plan := func(engine) { return { speed: 4 } }`)))
	assert.Error(t, d.LoadSource([]byte(`plan := func(engine) {`)))
	assert.Equal(t, 4.0, d.Plan(Input{}).Speed)
}

func TestDirectorLoadMissing(t *testing.T) {
	d := NewDirector(testFallback, 3, nil)
	assert.Error(t, d.Load("missing.tengo"))
	assert.False(t, d.Loaded())
	assert.NoError(t, d.Reload())
}

func TestCleanScriptPath(t *testing.T) {
	assert.Equal(t, "scripts/director.tengo", cleanScriptPath("director.tengo"))
	assert.Equal(t, "scripts/director.tengo", cleanScriptPath("scripts/director.tengo"))
	assert.Equal(t, "scripts/director.tengo", cleanScriptPath("spawn/scripts/director.tengo"))
}
