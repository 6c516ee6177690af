package slicer

import (
	"errors"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/gesture"
)

// Controller routes both gesture sources through one resolver and one
// executor. All failures are absorbed; callers only see the effects of
// slices that happened.
type Controller struct {
	World    *ecs.World
	Round    *Round
	Resolver *gesture.Resolver
	Executor *Executor
	HitTest  gesture.HitTestFunc
	Tracker  *gesture.Tracker
	Debug    bool

	drag gesture.Drag
}

// Swipe resolves one start→end NDC motion and slices the surface under
// start.
func (c *Controller) Swipe(start, end cp.Vector) []Effect {
	if c == nil || c.Resolver == nil || c.Executor == nil {
		return nil
	}
	target, line, err := c.Resolver.Cut(c.HitTest, start, end)
	if err != nil {
		if c.Debug && !errors.Is(err, gesture.ErrStartMissed) {
			log.Printf("slicer: cut rejected: %v", err)
		}
		return nil
	}
	res, ok := c.Executor.Slice(c.World, c.Round, target, line)
	if !ok {
		return nil
	}
	return res.Effects
}

func (c *Controller) PointerDown(ndc cp.Vector) {
	if c == nil {
		return
	}
	c.drag.Press(ndc)
}

// PointerUp closes a press-drag-release gesture.
func (c *Controller) PointerUp(ndc cp.Vector) []Effect {
	if c == nil {
		return nil
	}
	start, end, ok := c.drag.Release(ndc)
	if !ok {
		return nil
	}
	return c.Swipe(start, end)
}

// DragStart returns the press point of a drag in progress.
func (c *Controller) DragStart() (cp.Vector, bool) {
	if c == nil {
		return cp.Vector{}, false
	}
	return c.drag.Start()
}

// Motion feeds a continuous NDC sample; every qualifying consecutive pair
// is treated as a swipe.
func (c *Controller) Motion(ndc cp.Vector) []Effect {
	if c == nil || c.Tracker == nil {
		return nil
	}
	start, end, ok := c.Tracker.Sample(ndc)
	if !ok {
		return nil
	}
	return c.Swipe(start, end)
}

// HandSample feeds a normalized hand landmark point in image space.
func (c *Controller) HandSample(p cp.Vector) []Effect {
	return c.Motion(gesture.HandToNDC(p))
}

// SetMotionEnabled toggles the continuous source. Disabling forgets the
// last sample.
func (c *Controller) SetMotionEnabled(on bool) {
	if c == nil || c.Tracker == nil {
		return
	}
	if on {
		c.Tracker.Enable()
		return
	}
	c.Tracker.Disable()
}
