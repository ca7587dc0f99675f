package render

import (
	"errors"
	"image"
)

// ErrTextureLoad is returned when a texture cannot be read or decoded.
var ErrTextureLoad = errors.New("render: texture load failed")

// Texture identifies a loaded texture. ID 0 is never a valid texture.
type Texture struct {
	ID     int
	Width  int
	Height int
}

// Bounds returns the full source rectangle of the texture.
func (t Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

// Renderer is the drawing surface the engine talks to. Destination
// rectangles are in world space and go through the camera; FillRect and
// RenderTexture after CameraLookAt(0, 0) therefore draw in screen space.
type Renderer interface {
	LoadTexture(path string) (Texture, error)
	SetWorldBounds(r image.Rectangle)
	CameraLookAt(x, y int)
	RenderTexture(id int, src, dst image.Rectangle)
	SetDrawColor(r, g, b, a uint8)
	ClearScreen()
	FillRect(r image.Rectangle)
	WindowSize() (w, h int)
	ToWorldCoordinates(x, y int) image.Point
	PresentFrame()
}
