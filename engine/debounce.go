package engine

import "time"

// debouncer accepts a toggle only when window has passed since the last
// accepted one. It never blocks.
type debouncer struct {
	window time.Duration
	last   time.Time
	armed  bool
}

func (d *debouncer) allow(now time.Time) bool {
	if d.armed && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	d.armed = true
	return true
}
