package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/slicer"
	"golang.org/x/image/font/basicfont"
)

const hudScale = 2

type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(screen *ebiten.Image, round *slicer.Round, handMode bool) {
	h.text(screen, fmt.Sprintf("SCORE %d", round.Score), 16, 12)

	lives := fmt.Sprintf("LIVES %d", round.Lives)
	w, _ := ebtext.Measure(lives, h.face, 0)
	h.text(screen, lives, common.BaseWidth-16-w*hudScale, 12)

	mode := "mouse: drag to slice   H: hand mode"
	if handMode {
		mode = "hand mode: sweep through zombies   H: mouse"
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(16, common.BaseHeight-24)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff})
	ebtext.Draw(screen, mode, h.face, op)
}

func (h *HUD) text(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, s, h.face, op)
}
