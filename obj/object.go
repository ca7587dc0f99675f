package obj

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/milk9111/adventure/component"
	"github.com/milk9111/adventure/render"
)

var lastID atomic.Int64

// NextID returns a new process-wide object identity. Ids start at 1 and
// only grow.
func NextID() int {
	return int(lastID.Add(1))
}

// Object is anything the world can own and draw. The set of implementations
// is closed: *Renderable, *Player and *Temporary.
type Object interface {
	ID() int
	Position() image.Point
	Sheet() *component.SpriteSheet
	Update(dt time.Duration)
	Render(r render.Renderer)
	CurrentFrameRegion() image.Rectangle

	object()
}

// Renderable is a positioned object drawn from its own sprite sheet.
type Renderable struct {
	id    int
	pos   image.Point
	sheet *component.SpriteSheet
}

// NewRenderable creates a renderable at pos owning sheet.
func NewRenderable(sheet *component.SpriteSheet, pos image.Point) *Renderable {
	return &Renderable{id: NextID(), pos: pos, sheet: sheet}
}

func (r *Renderable) ID() int { return r.id }

func (r *Renderable) Position() image.Point { return r.pos }

func (r *Renderable) Sheet() *component.SpriteSheet { return r.sheet }

// Update advances the sprite animation.
func (r *Renderable) Update(dt time.Duration) {
	r.sheet.Advance(dt)
}

// Render draws the current animation frame at the object's position.
func (r *Renderable) Render(rd render.Renderer) {
	r.sheet.Render(rd, r.pos)
}

func (r *Renderable) CurrentFrameRegion() image.Rectangle {
	return r.sheet.CurrentSourceRegion()
}

func (r *Renderable) object() {}
