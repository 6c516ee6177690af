package geom

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/jakecoffman/cp"
)

// degenerateMaskLength is the line length below which the keep test stops
// measuring sides and falls back to a fixed split.
const degenerateMaskLength = 1e-4

// KeepSide reports whether uv is on the kept half of the line start→end.
// side 0 keeps everything. A degenerate line discards everything for side > 0
// and keeps everything otherwise, so the two halves still partition the
// surface. Points on the line are kept by both halves.
func KeepSide(uv, start, end cp.Vector, side int) bool {
	if side == 0 {
		return true
	}
	d := end.Sub(start)
	if d.Length() < degenerateMaskLength {
		return side < 0
	}
	return d.Cross(uv.Sub(start))*float64(side) >= 0
}

// Visible is the full per-pixel test: transparent texels are never visible.
func Visible(uv cp.Vector, alpha uint32, start, end cp.Vector, side int) bool {
	if alpha == 0 {
		return false
	}
	return KeepSide(uv, start, end, side)
}

// PixelUV maps the centre of pixel (x, y) of bounds into texture space,
// flipping y so v points up.
func PixelUV(x, y int, bounds image.Rectangle) cp.Vector {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	return cp.Vector{
		X: (float64(x-bounds.Min.X) + 0.5) / w,
		Y: 1 - (float64(y-bounds.Min.Y)+0.5)/h,
	}
}

// MaskImage renders the kept half of src on the CPU. It is the fallback for
// hosts without a shader path and backs the mask command.
func MaskImage(src image.Image, start, end cp.Vector, side int) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return out
	}
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if Visible(PixelUV(x, y, b), a, start, end, side) {
				continue
			}
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{})
		}
	}
	return out
}
