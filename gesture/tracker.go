package gesture

import "github.com/jakecoffman/cp"

// Tracker turns a stream of points into consecutive-pair swipes. A disabled
// tracker forgets its last point so motion cannot resume across a toggle.
type Tracker struct {
	// MinMotion is the NDC distance two samples must span to count as a swipe.
	MinMotion float64

	last    cp.Vector
	hasLast bool
	enabled bool
}

func NewTracker(minMotion float64) *Tracker {
	return &Tracker{MinMotion: minMotion, enabled: true}
}

// Sample feeds the next point and returns the swipe it closes, if any.
func (t *Tracker) Sample(p cp.Vector) (start, end cp.Vector, ok bool) {
	if t == nil || !t.enabled {
		return cp.Vector{}, cp.Vector{}, false
	}
	prev, had := t.last, t.hasLast
	t.last, t.hasLast = p, true
	if !had || prev.Distance(p) < t.MinMotion {
		return cp.Vector{}, cp.Vector{}, false
	}
	return prev, p, true
}

// Lost drops the last point without disabling, e.g. when the hand leaves
// the frame.
func (t *Tracker) Lost() {
	if t == nil {
		return
	}
	t.hasLast = false
}

func (t *Tracker) Enable() {
	if t == nil {
		return
	}
	t.enabled = true
}

func (t *Tracker) Disable() {
	if t == nil {
		return
	}
	t.enabled = false
	t.hasLast = false
}

func (t *Tracker) Enabled() bool {
	return t != nil && t.enabled
}
