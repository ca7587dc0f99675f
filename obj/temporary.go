package obj

import (
	"image"
	"time"

	"github.com/milk9111/adventure/component"
)

// Temporary is a world object with a bounded lifetime. It reports itself
// expired once its time-to-live has elapsed since creation; removal is up
// to the owner.
type Temporary struct {
	Renderable

	created time.Time
	ttl     time.Duration
}

// NewTemporary creates a transient object created at the given time.
func NewTemporary(sheet *component.SpriteSheet, pos image.Point, ttl time.Duration, created time.Time) *Temporary {
	return &Temporary{
		Renderable: Renderable{id: NextID(), pos: pos, sheet: sheet},
		created:    created,
		ttl:        ttl,
	}
}

// Expired reports whether at least the TTL has passed since creation.
func (t *Temporary) Expired(now time.Time) bool {
	return now.Sub(t.created) >= t.ttl
}

func (t *Temporary) TTL() time.Duration { return t.ttl }

func (t *Temporary) Created() time.Time { return t.created }
