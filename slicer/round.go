// Package slicer executes cuts against sliceable entities and keeps the
// per-round state that gates them.
package slicer

import (
	"github.com/google/uuid"
)

// Round is the state of one play session: score, lives, the tick clock and
// the global slice cooldown. Reset starts a new round.
type Round struct {
	ID    string
	Score int
	Lives int
	Clock float64

	cooldown  float64
	lastSlice float64
	sliced    bool
	over      bool
}

func NewRound(lives int, cooldown float64) *Round {
	r := &Round{cooldown: cooldown}
	r.Reset(lives)
	return r
}

// Reset clears score, clock and cooldown and issues a fresh round id.
func (r *Round) Reset(lives int) {
	if r == nil {
		return
	}
	r.ID = uuid.New().String()[:8]
	r.Score = 0
	r.Lives = lives
	r.Clock = 0
	r.lastSlice = 0
	r.sliced = false
	r.over = false
}

// Advance moves the round clock forward by dt seconds.
func (r *Round) Advance(dt float64) {
	if r == nil || dt <= 0 {
		return
	}
	r.Clock += dt
}

// SetCooldown changes the minimum spacing between executed slices.
func (r *Round) SetCooldown(seconds float64) {
	if r == nil {
		return
	}
	r.cooldown = seconds
}

// CanSlice reports whether the cooldown since the last executed slice has
// elapsed and the round is still running.
func (r *Round) CanSlice() bool {
	if r == nil || r.over {
		return false
	}
	if !r.sliced {
		return true
	}
	return r.Clock-r.lastSlice >= r.cooldown
}

// MarkSliced starts the cooldown at the current clock.
func (r *Round) MarkSliced() {
	if r == nil {
		return
	}
	r.lastSlice = r.Clock
	r.sliced = true
}

func (r *Round) AddScore(delta int) {
	if r == nil || r.over {
		return
	}
	r.Score += delta
}

// LoseLife removes one life and reports whether the round just ended.
func (r *Round) LoseLife() bool {
	if r == nil || r.over {
		return false
	}
	r.Lives--
	if r.Lives <= 0 {
		r.Lives = 0
		r.over = true
		return true
	}
	return false
}

func (r *Round) Over() bool {
	return r != nil && r.over
}
