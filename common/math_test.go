package common

import (
	"image"
	"testing"
)

func TestWithinBox(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
		want bool
	}{
		{"same point", image.Pt(10, 10), image.Pt(10, 10), true},
		{"just inside", image.Pt(0, 0), image.Pt(31, -31), true},
		{"on x edge", image.Pt(0, 0), image.Pt(32, 0), false},
		{"on y edge", image.Pt(0, 0), image.Pt(0, -32), false},
		{"far on one axis", image.Pt(0, 0), image.Pt(5, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinBox(tt.a, tt.b, 32); got != tt.want {
				t.Fatalf("WithinBox(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	// lower bound wins when the range is inverted
	if got := Clamp(3, 0, -20); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
