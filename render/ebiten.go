package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ebiten draws onto the screen image ebiten hands to Game.Draw. Textures
// are decoded from an fs.FS and cached by path.
type Ebiten struct {
	fsys   fs.FS
	camera *Camera

	screen *ebiten.Image
	color  color.NRGBA

	byPath   map[string]Texture
	textures map[int]*ebiten.Image
	nextID   int
}

// NewEbiten creates a renderer reading textures from fsys with a viewport
// of the given logical size.
func NewEbiten(fsys fs.FS, screenW, screenH int) *Ebiten {
	return &Ebiten{
		fsys:     fsys,
		camera:   NewCamera(screenW, screenH),
		color:    color.NRGBA{A: 0xff},
		byPath:   make(map[string]Texture),
		textures: make(map[int]*ebiten.Image),
	}
}

// Begin sets the image the following calls draw onto.
func (e *Ebiten) Begin(screen *ebiten.Image) {
	if e == nil {
		return
	}
	e.screen = screen
	if screen != nil {
		b := screen.Bounds()
		e.camera.SetScreenSize(b.Dx(), b.Dy())
	}
}

// LoadTexture decodes the image at p, returning the cached texture when the
// same path was loaded before.
func (e *Ebiten) LoadTexture(p string) (Texture, error) {
	clean := path.Clean(p)
	if tex, ok := e.byPath[clean]; ok {
		return tex, nil
	}

	b, err := fs.ReadFile(e.fsys, clean)
	if err != nil {
		return Texture{}, fmt.Errorf("%w: read %s: %v", ErrTextureLoad, clean, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return Texture{}, fmt.Errorf("%w: decode %s: %v", ErrTextureLoad, clean, err)
	}

	e.nextID++
	bounds := img.Bounds()
	tex := Texture{ID: e.nextID, Width: bounds.Dx(), Height: bounds.Dy()}
	e.textures[tex.ID] = ebiten.NewImageFromImage(img)
	e.byPath[clean] = tex
	return tex, nil
}

func (e *Ebiten) SetWorldBounds(r image.Rectangle) {
	e.camera.SetWorldBounds(r)
}

func (e *Ebiten) CameraLookAt(x, y int) {
	e.camera.LookAt(x, y)
}

// RenderTexture blits src of texture id, scaled to dst.
func (e *Ebiten) RenderTexture(id int, src, dst image.Rectangle) {
	if e.screen == nil || src.Empty() || dst.Empty() {
		return
	}
	img, ok := e.textures[id]
	if !ok {
		return
	}
	sub, ok := img.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	screenDst := e.camera.ToScreen(dst)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(screenDst.Min.X), float64(screenDst.Min.Y))
	op.Filter = ebiten.FilterNearest
	e.screen.DrawImage(sub, op)
}

func (e *Ebiten) SetDrawColor(r, g, b, a uint8) {
	e.color = color.NRGBA{R: r, G: g, B: b, A: a}
}

// ClearScreen fills the whole frame with the draw color.
func (e *Ebiten) ClearScreen() {
	if e.screen == nil {
		return
	}
	e.screen.Fill(e.color)
}

func (e *Ebiten) FillRect(r image.Rectangle) {
	if e.screen == nil || r.Empty() {
		return
	}
	s := e.camera.ToScreen(r)
	vector.FillRect(e.screen, float32(s.Min.X), float32(s.Min.Y), float32(s.Dx()), float32(s.Dy()), e.color, false)
}

func (e *Ebiten) WindowSize() (int, int) {
	return e.camera.ScreenSize()
}

func (e *Ebiten) ToWorldCoordinates(x, y int) image.Point {
	return e.camera.ToWorld(x, y)
}

// PresentFrame ends the frame; ebiten presents the screen once Draw returns.
func (e *Ebiten) PresentFrame() {
	e.screen = nil
}
