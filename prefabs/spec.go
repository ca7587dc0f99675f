package prefabs

import (
	"fmt"
	"image"
	"io/fs"
	"sort"

	"github.com/milk9111/adventure/component"
	"github.com/milk9111/adventure/render"
	"gopkg.in/yaml.v3"
)

// SpriteSheetSpec describes a sprite sheet texture and its animations.
type SpriteSheetSpec struct {
	Name        string                   `yaml:"name"`
	Texture     string                   `yaml:"texture"`
	FrameWidth  int                      `yaml:"frame_width"`
	FrameHeight int                      `yaml:"frame_height"`
	OriginX     int                      `yaml:"origin_x"`
	OriginY     int                      `yaml:"origin_y"`
	Animations  map[string]AnimationSpec `yaml:"animations"`
}

// AnimationSpec lays frames out left-to-right on Row starting at StartCol,
// continuing on the next row when they run past the sheet width.
type AnimationSpec struct {
	Row      int     `yaml:"row"`
	StartCol int     `yaml:"start_col"`
	Frames   int     `yaml:"frames"`
	FPS      float64 `yaml:"fps"`
	Loop     bool    `yaml:"loop"`
}

// TextureLoader is the part of render.Renderer sprite sheets need.
type TextureLoader interface {
	LoadTexture(path string) (render.Texture, error)
}

func LoadSpec[T any](fsys fs.FS, filename string) (T, error) {
	var zero T
	data, err := Load(fsys, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSpriteSheet reads a sprite sheet spec, loads its texture and slices
// the animation frames.
func LoadSpriteSheet(fsys fs.FS, filename string, textures TextureLoader) (*component.SpriteSheet, error) {
	spec, err := LoadSpec[SpriteSheetSpec](fsys, filename)
	if err != nil {
		return nil, err
	}
	if textures == nil {
		return nil, fmt.Errorf("prefabs: %s: nil texture loader", filename)
	}
	tex, err := textures.LoadTexture(spec.Texture)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	sheet, err := spec.Build(tex)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return sheet, nil
}

// Build slices the sheet's animations out of tex.
func (s SpriteSheetSpec) Build(tex render.Texture) (*component.SpriteSheet, error) {
	if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", s.FrameWidth, s.FrameHeight)
	}
	cols := tex.Width / s.FrameWidth
	rows := tex.Height / s.FrameHeight
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("texture %dx%d smaller than one %dx%d frame", tex.Width, tex.Height, s.FrameWidth, s.FrameHeight)
	}

	names := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		names = append(names, name)
	}
	sort.Strings(names)

	anims := make(map[string]*component.AnimationDef, len(names))
	for _, name := range names {
		a := s.Animations[name]
		if a.Frames <= 0 {
			return nil, fmt.Errorf("animation %s: no frames", name)
		}
		fps := a.FPS
		if fps <= 0 {
			fps = 12
		}
		start := a.Row*cols + a.StartCol
		if start+a.Frames > cols*rows {
			return nil, fmt.Errorf("animation %s: frames run past the sheet", name)
		}
		frames := make([]image.Rectangle, a.Frames)
		for i := range frames {
			idx := start + i
			sx := (idx % cols) * s.FrameWidth
			sy := (idx / cols) * s.FrameHeight
			frames[i] = image.Rect(sx, sy, sx+s.FrameWidth, sy+s.FrameHeight)
		}
		anims[name] = &component.AnimationDef{Name: name, FPS: fps, Loop: a.Loop, Frames: frames}
	}

	return component.NewSpriteSheet(tex.ID, s.FrameWidth, s.FrameHeight, image.Pt(s.OriginX, s.OriginY), anims), nil
}
