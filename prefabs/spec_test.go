package prefabs

import (
	"image"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/adventure/render"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	tests := []struct {
		file  string
		anims []string
	}{
		{"player.yaml", []string{"IdleDown", "MoveUp", "AttackLeft", "GameOver"}},
		{"bomb.yaml", []string{"Explode"}},
		{"prefabs/bomb.yaml", []string{"Explode"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			spec, err := LoadSpec[SpriteSheetSpec](nil, tt.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for _, name := range tt.anims {
				if _, ok := spec.Animations[name]; !ok {
					t.Fatalf("expected animation %s in %s", name, tt.file)
				}
			}
		})
	}
}

func TestLoadPrefersAssetDir(t *testing.T) {
	fsys := fstest.MapFS{
		"bomb.yaml": {Data: []byte("name: custom\ntexture: b.png\nframe_width: 8\nframe_height: 8\n")},
	}
	spec, err := LoadSpec[SpriteSheetSpec](fsys, "bomb.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "custom" {
		t.Fatalf("expected asset dir override, got %q", spec.Name)
	}
}

func TestBuildSlicesFrames(t *testing.T) {
	spec := SpriteSheetSpec{
		FrameWidth:  16,
		FrameHeight: 16,
		OriginX:     8,
		OriginY:     12,
		Animations: map[string]AnimationSpec{
			"Wrap": {Row: 0, StartCol: 2, Frames: 3, FPS: 5},
		},
	}
	sheet, err := spec.Build(render.Texture{ID: 3, Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	def := sheet.Animations["Wrap"]
	want := []image.Rectangle{
		image.Rect(32, 0, 48, 16),
		image.Rect(48, 0, 64, 16),
		image.Rect(0, 16, 16, 32),
	}
	if len(def.Frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(def.Frames))
	}
	for i := range want {
		if def.Frames[i] != want[i] {
			t.Fatalf("frame %d: expected %v, got %v", i, want[i], def.Frames[i])
		}
	}
	if sheet.TextureID != 3 || sheet.Origin != image.Pt(8, 12) {
		t.Fatalf("unexpected sheet header %+v", sheet)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		spec SpriteSheetSpec
		want string
	}{
		{"zero frame size", SpriteSheetSpec{}, "invalid frame size"},
		{"texture too small", SpriteSheetSpec{FrameWidth: 128, FrameHeight: 128}, "smaller than"},
		{"too many frames", SpriteSheetSpec{FrameWidth: 16, FrameHeight: 16, Animations: map[string]AnimationSpec{"A": {Frames: 9}}}, "past the sheet"},
		{"no frames", SpriteSheetSpec{FrameWidth: 16, FrameHeight: 16, Animations: map[string]AnimationSpec{"A": {}}}, "no frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Build(render.Texture{ID: 1, Width: 64, Height: 32})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSpriteSheetTextureFailure(t *testing.T) {
	r := render.NewRecorder(nil, 100, 100)
	r.Fail["player.png"] = true
	if _, err := LoadSpriteSheet(nil, "player.yaml", r); err == nil {
		t.Fatalf("expected texture failure to surface")
	}

	r = render.NewRecorder(nil, 100, 100)
	r.DefaultSize = 512
	sheet, err := LoadSpriteSheet(nil, "player.yaml", r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sheet.Has("GameOver") {
		t.Fatalf("expected GameOver animation")
	}
}
