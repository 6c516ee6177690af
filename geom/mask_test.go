package geom

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepSidePartitions(t *testing.T) {
	lines := []CutLine{
		{Start: cp.Vector{X: 0.2, Y: 0.5}, End: cp.Vector{X: 0.8, Y: 0.5}},
		{Start: cp.Vector{X: 0, Y: 0}, End: cp.Vector{X: 1, Y: 1}},
		{Start: cp.Vector{X: 0.9, Y: 0.1}, End: cp.Vector{X: 0.3, Y: 0.95}},
		{Start: cp.Vector{X: 0.5, Y: 1}, End: cp.Vector{X: 0.5, Y: 0}},
	}
	const n = 64
	const tol = 1e-9

	for _, line := range lines {
		for i := 0; i <= n; i++ {
			for j := 0; j <= n; j++ {
				uv := cp.Vector{X: float64(i) / n, Y: float64(j) / n}
				if math.Abs(line.SignedDistance(uv)) < tol {
					continue
				}
				pos := KeepSide(uv, line.Start, line.End, 1)
				neg := KeepSide(uv, line.Start, line.End, -1)
				require.True(t, pos != neg, "line %v uv %v: +1=%v -1=%v", line, uv, pos, neg)
			}
		}
	}
}

func TestKeepSideHorizontalHalves(t *testing.T) {
	start := cp.Vector{X: 0.2, Y: 0.5}
	end := cp.Vector{X: 0.8, Y: 0.5}

	assert.True(t, KeepSide(cp.Vector{X: 0.5, Y: 0.75}, start, end, 1), "top half belongs to +1")
	assert.False(t, KeepSide(cp.Vector{X: 0.5, Y: 0.25}, start, end, 1))
	assert.True(t, KeepSide(cp.Vector{X: 0.5, Y: 0.25}, start, end, -1), "bottom half belongs to -1")
	assert.True(t, KeepSide(cp.Vector{X: 0.05, Y: 0.9}, start, end, 1), "line extends past its endpoints")
}

func TestKeepSideDegenerate(t *testing.T) {
	p := cp.Vector{X: 0.5, Y: 0.5}
	uv := cp.Vector{X: 0.1, Y: 0.9}

	assert.False(t, KeepSide(uv, p, p, 1))
	assert.True(t, KeepSide(uv, p, p, -1))
	assert.True(t, KeepSide(uv, p, p, 0))
}

func TestVisibleTransparent(t *testing.T) {
	start := cp.Vector{X: 0, Y: 0.5}
	end := cp.Vector{X: 1, Y: 0.5}
	uv := cp.Vector{X: 0.5, Y: 0.9}

	assert.True(t, Visible(uv, 0xffff, start, end, 1))
	assert.False(t, Visible(uv, 0, start, end, 1))
	assert.False(t, Visible(uv, 0, start, end, 0))
}

func TestMaskImageHalves(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	// transparent corner pixel stays hidden on both halves
	src.SetNRGBA(0, 0, color.NRGBA{})

	start := cp.Vector{X: 0, Y: 0.5}
	end := cp.Vector{X: 1, Y: 0.5}
	top := MaskImage(src, start, end, 1)
	bottom := MaskImage(src, start, end, -1)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			ta := top.NRGBAAt(x, y).A
			ba := bottom.NRGBAAt(x, y).A
			if x == 0 && y == 0 {
				assert.Zero(t, ta)
				assert.Zero(t, ba)
				continue
			}
			// image rows grow downward, so rows 0..3 are the top half
			if y < 4 {
				assert.Equal(t, uint8(255), ta, "top (%d,%d)", x, y)
				assert.Zero(t, ba, "bottom (%d,%d)", x, y)
			} else {
				assert.Zero(t, ta, "top (%d,%d)", x, y)
				assert.Equal(t, uint8(255), ba, "bottom (%d,%d)", x, y)
			}
		}
	}
}
