package component

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/milk9111/adventure/render"
)

// ErrUnknownAnimation is returned when activating a name the sheet does not define.
var ErrUnknownAnimation = errors.New("component: unknown animation")

// AnimationDef describes one named animation: the source region of each
// frame on the sheet texture, its playback rate and whether it wraps.
type AnimationDef struct {
	Name   string
	FPS    float64
	Loop   bool
	Frames []image.Rectangle
}

// FrameDuration returns how long each frame is shown.
func (d *AnimationDef) FrameDuration() time.Duration {
	if d == nil || d.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / d.FPS)
}

// Duration returns the length of one pass over all frames.
func (d *AnimationDef) Duration() time.Duration {
	if d == nil {
		return 0
	}
	return d.FrameDuration() * time.Duration(len(d.Frames))
}

// SpriteSheet is a texture carrying zero or more named animations, at most
// one of which plays at a time. Frames are drawn so that Origin lands on the
// owner's position.
type SpriteSheet struct {
	TextureID   int
	FrameWidth  int
	FrameHeight int
	Origin      image.Point
	Animations  map[string]*AnimationDef

	active   *AnimationDef
	elapsed  time.Duration
	frame    int
	finished bool
}

// NewSpriteSheet creates a sheet with no active animation.
func NewSpriteSheet(textureID, frameW, frameH int, origin image.Point, anims map[string]*AnimationDef) *SpriteSheet {
	if anims == nil {
		anims = make(map[string]*AnimationDef)
	}
	return &SpriteSheet{
		TextureID:   textureID,
		FrameWidth:  frameW,
		FrameHeight: frameH,
		Origin:      origin,
		Animations:  anims,
	}
}

// Clone returns a sheet sharing the animation definitions with fresh,
// inactive playback state.
func (s *SpriteSheet) Clone() *SpriteSheet {
	if s == nil {
		return nil
	}
	return NewSpriteSheet(s.TextureID, s.FrameWidth, s.FrameHeight, s.Origin, s.Animations)
}

// ActivateAnimation switches playback to name and restarts it from the
// first frame. An empty name stops playback. Unknown names return an error
// wrapping ErrUnknownAnimation and leave playback untouched.
func (s *SpriteSheet) ActivateAnimation(name string) error {
	if s == nil {
		return nil
	}
	if name == "" {
		s.active = nil
		s.reset()
		return nil
	}
	def, ok := s.Animations[name]
	if !ok || def == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	s.active = def
	s.reset()
	return nil
}

func (s *SpriteSheet) reset() {
	s.elapsed = 0
	s.frame = 0
	s.finished = false
}

// Has reports whether the sheet defines name.
func (s *SpriteSheet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Animations[name]
	return ok
}

// Advance moves playback forward by dt.
func (s *SpriteSheet) Advance(dt time.Duration) {
	if s == nil || s.active == nil || dt <= 0 {
		return
	}
	s.elapsed += dt

	count := len(s.active.Frames)
	per := s.active.FrameDuration()
	if count == 0 || per <= 0 {
		return
	}

	idx := int(s.elapsed / per)
	if s.active.Loop {
		s.frame = idx % count
		return
	}
	if idx >= count {
		idx = count - 1
	}
	s.frame = idx
	if s.elapsed > s.active.Duration() {
		s.finished = true
	}
}

// Active reports whether an animation is playing.
func (s *SpriteSheet) Active() bool {
	return s != nil && s.active != nil
}

// ActiveName returns the name of the playing animation, or "".
func (s *SpriteSheet) ActiveName() string {
	if !s.Active() {
		return ""
	}
	return s.active.Name
}

// Finished reports whether a non-looping animation has played through.
func (s *SpriteSheet) Finished() bool {
	return s != nil && s.finished
}

// CurrentFrame returns the index of the frame being shown.
func (s *SpriteSheet) CurrentFrame() int {
	if s == nil {
		return 0
	}
	return s.frame
}

// CurrentSourceRegion returns the texture region of the current frame, or
// an empty rectangle when nothing plays.
func (s *SpriteSheet) CurrentSourceRegion() image.Rectangle {
	if !s.Active() || len(s.active.Frames) == 0 {
		return image.Rectangle{}
	}
	return s.active.Frames[s.frame]
}

// Render draws the current frame with Origin placed on pos.
func (s *SpriteSheet) Render(r render.Renderer, pos image.Point) {
	if r == nil {
		return
	}
	src := s.CurrentSourceRegion()
	if src.Empty() {
		return
	}
	topLeft := pos.Sub(s.Origin)
	dst := image.Rect(topLeft.X, topLeft.Y, topLeft.X+src.Dx(), topLeft.Y+src.Dy())
	r.RenderTexture(s.TextureID, src, dst)
}
