// Package procgen draws the game's placeholder art and sounds in memory so
// the binary ships without binary assets.
package procgen

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Zombie draws a front-facing zombie filling a w×h frame on a transparent
// background.
func Zombie(w, h int, seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	skin := tint(colornames.Darkseagreen, rng)
	shirt := tint(colornames.Saddlebrown, rng)
	pants := tint(colornames.Darkslateblue, rng)

	fw, fh := float64(w), float64(h)
	headR := fw * 0.2

	// legs
	fillRect(img, rect(fw*0.3, fh*0.62, fw*0.46, fh), pants)
	fillRect(img, rect(fw*0.54, fh*0.62, fw*0.7, fh), pants)
	// torso
	fillRect(img, rect(fw*0.22, fh*0.28, fw*0.78, fh*0.66), shirt)
	// arms reach forward, so they read as raised
	fillRect(img, rect(fw*0.06, fh*0.3, fw*0.22, fh*0.5), skin)
	fillRect(img, rect(fw*0.78, fh*0.3, fw*0.94, fh*0.5), skin)
	// head
	fillCircle(img, fw*0.5, fh*0.16, headR, skin)

	eye := colornames.Firebrick
	fillCircle(img, fw*0.42, fh*0.14, headR*0.18, eye)
	fillCircle(img, fw*0.58, fh*0.14, headR*0.18, eye)
	fillRect(img, rect(fw*0.42, fh*0.22, fw*0.58, fh*0.235), colornames.Black)

	// torn shirt
	for i := 0; i < 6; i++ {
		cx := fw * (0.25 + 0.5*rng.Float64())
		cy := fh * (0.3 + 0.34*rng.Float64())
		fillCircle(img, cx, cy, fw*0.03, skin)
	}

	return img
}

// BloodSplat draws one of several irregular blood blobs in a size×size frame.
func BloodSplat(variant, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	rng := rand.New(rand.NewPCG(uint64(variant)+1, 0xb100d))

	// variants shade from fresh to dried blood
	fresh, _ := colorful.MakeColor(colornames.Darkred)
	dried, _ := colorful.MakeColor(colornames.Maroon)
	r8, g8, b8 := fresh.BlendLab(dried, float64(variant%3)/2).Clamped().RGB255()
	red := color.RGBA{R: r8, G: g8, B: b8, A: 0xff}
	s := float64(size)
	fillCircle(img, s/2, s/2, s*0.28, red)
	blobs := 3 + variant%3
	for i := 0; i < blobs; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := s * (0.15 + 0.15*rng.Float64())
		r := s * (0.06 + 0.08*rng.Float64())
		fillCircle(img, s/2+math.Cos(angle)*dist, s/2+math.Sin(angle)*dist, r, red)
	}
	return img
}

// tint jitters hue and lightness in HCL so palettes vary without going muddy.
func tint(c color.RGBA, rng *rand.Rand) color.RGBA {
	base, _ := colorful.MakeColor(c)
	h, ch, l := base.Hcl()
	h += rng.Float64()*24 - 12
	l = min(max(l+rng.Float64()*0.12-0.06, 0), 1)
	r, g, b := colorful.Hcl(h, ch, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func rect(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(int(x0), int(y0), int(math.Ceil(x1)), int(math.Ceil(y1)))
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func fillCircle(img *image.NRGBA, cx, cy, r float64, c color.Color) {
	b := img.Bounds()
	x0 := max(b.Min.X, int(cx-r))
	x1 := min(b.Max.X, int(math.Ceil(cx+r)))
	y0 := max(b.Min.Y, int(cy-r))
	y1 := min(b.Max.Y, int(math.Ceil(cy+r)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}
