package render

import (
	"image"
	"testing"
)

func TestCameraLookAt(t *testing.T) {
	tests := []struct {
		name   string
		world  image.Rectangle
		target image.Point
		want   image.Point
	}{
		{"unbounded centers", image.Rectangle{}, image.Pt(500, 400), image.Pt(340, 280)},
		{"origin clamps to identity", image.Rect(0, 0, 2000, 2000), image.Pt(0, 0), image.Pt(0, 0)},
		{"inside bounds centers", image.Rect(0, 0, 2000, 2000), image.Pt(1000, 1000), image.Pt(840, 880)},
		{"far edge clamps", image.Rect(0, 0, 2000, 2000), image.Pt(1990, 1990), image.Pt(1680, 1760)},
		{"world smaller than view", image.Rect(0, 0, 100, 100), image.Pt(50, 50), image.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(320, 240)
			c.SetWorldBounds(tt.world)
			c.LookAt(tt.target.X, tt.target.Y)
			if got := c.ViewTopLeft(); got != tt.want {
				t.Fatalf("expected view top-left %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(320, 240)
	c.SetWorldBounds(image.Rect(0, 0, 1000, 1000))
	c.LookAt(500, 500)

	world := c.ToWorld(10, 20)
	if world != image.Pt(350, 400) {
		t.Fatalf("unexpected world point %v", world)
	}
	screen := c.ToScreen(image.Rect(world.X, world.Y, world.X+4, world.Y+4))
	if screen.Min != image.Pt(10, 20) {
		t.Fatalf("unexpected screen point %v", screen.Min)
	}
}

func TestRecorderTextures(t *testing.T) {
	r := NewRecorder(nil, 320, 240)
	r.Fail["missing.png"] = true

	a, err := r.LoadTexture("heart.png")
	if err != nil {
		t.Fatalf("load heart: %v", err)
	}
	b, err := r.LoadTexture("./heart.png")
	if err != nil {
		t.Fatalf("reload heart: %v", err)
	}
	if a.ID == 0 || a.ID != b.ID {
		t.Fatalf("expected cached non-zero id, got %d and %d", a.ID, b.ID)
	}
	if r.TexturePath(a.ID) != "heart.png" {
		t.Fatalf("unexpected path %q", r.TexturePath(a.ID))
	}
	if _, err := r.LoadTexture("missing.png"); err == nil {
		t.Fatalf("expected failure for missing.png")
	}
}
