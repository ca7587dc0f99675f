package render

import (
	"image"

	"github.com/milk9111/adventure/common"
)

// Camera maps world coordinates onto a viewport centered on a target point.
// The view is clamped to the world bounds when they are set, so looking at
// the origin yields the identity transform.
type Camera struct {
	screenW int
	screenH int
	world   image.Rectangle

	// top-left of the view in world coordinates
	offset image.Point
}

// NewCamera creates a camera for a viewport of the given size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{screenW: screenW, screenH: screenH}
}

// SetScreenSize updates the viewport size.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// ScreenSize returns the viewport size.
func (c *Camera) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

// SetWorldBounds sets the world pixel rectangle used to clamp the view.
func (c *Camera) SetWorldBounds(r image.Rectangle) {
	c.world = r.Canon()
}

// LookAt centers the view on (x, y).
func (c *Camera) LookAt(x, y int) {
	ox := x - c.screenW/2
	oy := y - c.screenH/2
	if !c.world.Empty() {
		ox = common.Clamp(ox, c.world.Min.X, c.world.Max.X-c.screenW)
		oy = common.Clamp(oy, c.world.Min.Y, c.world.Max.Y-c.screenH)
	}
	c.offset = image.Pt(ox, oy)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() image.Point {
	return c.offset
}

// ToScreen translates a world rectangle into viewport coordinates.
func (c *Camera) ToScreen(r image.Rectangle) image.Rectangle {
	return r.Sub(c.offset)
}

// ToWorld translates a viewport point into world coordinates.
func (c *Camera) ToWorld(x, y int) image.Point {
	return image.Pt(x, y).Add(c.offset)
}
