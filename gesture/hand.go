package gesture

import "github.com/jakecoffman/cp"

// HandToNDC maps a normalized landmark point (image space, [0,1]², y down,
// unmirrored webcam) to NDC. X is flipped so the view acts as a mirror and
// Y is flipped so up is positive.
func HandToNDC(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: -(p.X*2 - 1),
		Y: -(p.Y*2 - 1),
	}
}

// ScreenToNDC maps a pixel position in a w×h viewport to NDC.
func ScreenToNDC(x, y, w, h float64) cp.Vector {
	if w <= 0 || h <= 0 {
		return cp.Vector{}
	}
	return cp.Vector{
		X: x/w*2 - 1,
		Y: -(y/h*2 - 1),
	}
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(p cp.Vector, w, h float64) (float64, float64) {
	return (p.X + 1) / 2 * w, (1 - p.Y) / 2 * h
}
