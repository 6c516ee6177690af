package gesture

import "github.com/jakecoffman/cp"

// Drag records a press and resolves the gesture entirely at release. There
// is no timeout on a held press.
type Drag struct {
	start  cp.Vector
	active bool
}

func (d *Drag) Press(p cp.Vector) {
	d.start = p
	d.active = true
}

// Release ends the drag and returns its endpoints.
func (d *Drag) Release(p cp.Vector) (start, end cp.Vector, ok bool) {
	if !d.active {
		return cp.Vector{}, cp.Vector{}, false
	}
	d.active = false
	return d.start, p, true
}

// Start returns the press point of an active drag.
func (d *Drag) Start() (cp.Vector, bool) {
	return d.start, d.active
}

func (d *Drag) Cancel() {
	d.active = false
}

func (d *Drag) Active() bool {
	return d.active
}
