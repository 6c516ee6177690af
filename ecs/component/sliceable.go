package component

// SliceState tracks a sliceable surface through its single slice.
type SliceState int

const (
	SliceActive SliceState = iota
	SliceSliced
	SliceRetired
)

func (s SliceState) String() string {
	switch s {
	case SliceActive:
		return "active"
	case SliceSliced:
		return "sliced"
	case SliceRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// Sliceable marks a textured quad that can be cut once. Width and Height are
// the unscaled world extent of the quad.
type Sliceable struct {
	State  SliceState
	Width  float64
	Height float64
}

var SliceableComponent = NewComponent[Sliceable]()
