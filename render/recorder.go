package render

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"path"
)

// DrawCall is one recorded RenderTexture call.
type DrawCall struct {
	TextureID int
	Src       image.Rectangle
	// Dst is the destination as requested; Screen is Dst after the camera.
	Dst    image.Rectangle
	Screen image.Rectangle
}

// FillCall is one recorded FillRect call.
type FillCall struct {
	Color  color.NRGBA
	Rect   image.Rectangle
	Screen image.Rectangle
}

// Recorder is a headless Renderer that records what it was asked to draw.
// Texture sizes are read from fsys when it is set; otherwise every path
// loads as a DefaultSize square unless listed in Fail.
type Recorder struct {
	Draws     []DrawCall
	Fills     []FillCall
	Clears    int
	Presented int

	Fail        map[string]bool
	DefaultSize int

	fsys     fs.FS
	camera   *Camera
	color    color.NRGBA
	byPath   map[string]Texture
	texPaths map[int]string
	nextID   int
}

// NewRecorder creates a recorder with a viewport of w×h. fsys may be nil.
func NewRecorder(fsys fs.FS, w, h int) *Recorder {
	return &Recorder{
		Fail:        make(map[string]bool),
		DefaultSize: 32,
		fsys:        fsys,
		camera:      NewCamera(w, h),
		color:       color.NRGBA{A: 0xff},
		byPath:      make(map[string]Texture),
		texPaths:    make(map[int]string),
	}
}

func (r *Recorder) LoadTexture(p string) (Texture, error) {
	clean := path.Clean(p)
	if tex, ok := r.byPath[clean]; ok {
		return tex, nil
	}
	if r.Fail[clean] {
		return Texture{}, fmt.Errorf("%w: %s", ErrTextureLoad, clean)
	}

	w, h := r.DefaultSize, r.DefaultSize
	if r.fsys != nil {
		f, err := r.fsys.Open(clean)
		if err != nil {
			return Texture{}, fmt.Errorf("%w: open %s: %v", ErrTextureLoad, clean, err)
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			return Texture{}, fmt.Errorf("%w: decode %s: %v", ErrTextureLoad, clean, err)
		}
		w, h = cfg.Width, cfg.Height
	}

	r.nextID++
	tex := Texture{ID: r.nextID, Width: w, Height: h}
	r.byPath[clean] = tex
	r.texPaths[tex.ID] = clean
	return tex, nil
}

// TexturePath returns the path a texture id was loaded from.
func (r *Recorder) TexturePath(id int) string {
	return r.texPaths[id]
}

func (r *Recorder) SetWorldBounds(rect image.Rectangle) {
	r.camera.SetWorldBounds(rect)
}

func (r *Recorder) CameraLookAt(x, y int) {
	r.camera.LookAt(x, y)
}

func (r *Recorder) RenderTexture(id int, src, dst image.Rectangle) {
	r.Draws = append(r.Draws, DrawCall{TextureID: id, Src: src, Dst: dst, Screen: r.camera.ToScreen(dst)})
}

func (r *Recorder) SetDrawColor(red, g, b, a uint8) {
	r.color = color.NRGBA{R: red, G: g, B: b, A: a}
}

func (r *Recorder) ClearScreen() {
	r.Clears++
}

func (r *Recorder) FillRect(rect image.Rectangle) {
	r.Fills = append(r.Fills, FillCall{Color: r.color, Rect: rect, Screen: r.camera.ToScreen(rect)})
}

func (r *Recorder) WindowSize() (int, int) {
	return r.camera.ScreenSize()
}

func (r *Recorder) ToWorldCoordinates(x, y int) image.Point {
	return r.camera.ToWorld(x, y)
}

func (r *Recorder) PresentFrame() {
	r.Presented++
}

// Reset drops recorded calls, keeping loaded textures and camera state.
func (r *Recorder) Reset() {
	r.Draws = nil
	r.Fills = nil
	r.Clears = 0
	r.Presented = 0
}

// DrawsOf returns the recorded draws of one texture.
func (r *Recorder) DrawsOf(id int) []DrawCall {
	var out []DrawCall
	for _, d := range r.Draws {
		if d.TextureID == id {
			out = append(out, d)
		}
	}
	return out
}
