package component

import "github.com/jakecoffman/cp"

// SliceMask holds the per-instance visibility test parameters of a sliced
// piece. SideToKeep is +1 or -1; 0 shows the whole surface.
type SliceMask struct {
	LineStart  cp.Vector
	LineEnd    cp.Vector
	SideToKeep int
}

var SliceMaskComponent = NewComponent[SliceMask]()
