package common

import "image"

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// RectXYWH builds a rectangle from a top-left corner and a size.
func RectXYWH(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// WithinBox reports whether a and b are closer than limit on both axes.
func WithinBox(a, b image.Point, limit int) bool {
	return Abs(a.X-b.X) < limit && Abs(a.Y-b.Y) < limit
}
