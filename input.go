package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/gesture"
	"github.com/milk9111/zombieslice/slicer"
	"golang.org/x/image/colornames"
)

const stickDeadzone = 0.25

// Input samples the mouse and the first gamepad once per tick and feeds the
// slice controller. In hand mode the cursor stands in for a tracked hand
// point, so every movement is a potential swipe.
type Input struct {
	Width    float64
	Height   float64
	HandMode bool

	stickActive bool
	cursor      cp.Vector
}

func NewInput(w, h float64) *Input {
	return &Input{Width: w, Height: h}
}

// Update returns the effects of every slice the input produced this tick.
func (in *Input) Update(c *slicer.Controller) []slicer.Effect {
	var effects []slicer.Effect

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		in.HandMode = !in.HandMode
		c.SetMotionEnabled(in.HandMode)
	}

	cx, cy := ebiten.CursorPosition()
	in.cursor = cp.Vector{X: float64(cx), Y: float64(cy)}

	if in.HandMode {
		effects = append(effects, c.HandSample(in.cursorAsHand())...)
		return effects
	}

	ndc := gesture.ScreenToNDC(in.cursor.X, in.cursor.Y, in.Width, in.Height)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.PointerDown(ndc)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		effects = append(effects, c.PointerUp(ndc)...)
	}

	return append(effects, in.updateStick(c)...)
}

// cursorAsHand maps the cursor into landmark space: normalized, y down and
// mirrored like a selfie camera.
func (in *Input) cursorAsHand() cp.Vector {
	return cp.Vector{
		X: 1 - in.cursor.X/in.Width,
		Y: in.cursor.Y / in.Height,
	}
}

// updateStick treats the right stick of the first gamepad as a hand that
// enters the frame when pushed past the deadzone.
func (in *Input) updateStick(c *slicer.Controller) []slicer.Effect {
	gamepads := ebiten.AppendGamepadIDs(nil)
	if len(gamepads) == 0 {
		in.releaseStick(c)
		return nil
	}
	id := gamepads[0]
	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) <= stickDeadzone {
		in.releaseStick(c)
		return nil
	}
	if !in.stickActive {
		in.stickActive = true
		c.SetMotionEnabled(true)
	}
	return c.HandSample(cp.Vector{X: (1 - rx) / 2, Y: (1 + ry) / 2})
}

func (in *Input) releaseStick(c *slicer.Controller) {
	if !in.stickActive {
		return
	}
	in.stickActive = false
	c.SetMotionEnabled(false)
}

// DrawTrail shows the pending drag from its press point to the cursor.
func (in *Input) DrawTrail(screen *ebiten.Image, c *slicer.Controller) {
	if in.HandMode {
		vector.DrawFilledCircle(screen, float32(in.cursor.X), float32(in.cursor.Y), 6, colornames.Orange, true)
		return
	}
	start, ok := c.DragStart()
	if !ok {
		return
	}
	sx, sy := gesture.NDCToScreen(start, in.Width, in.Height)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(in.cursor.X), float32(in.cursor.Y), 3, colornames.Lightgrey, true)
}
