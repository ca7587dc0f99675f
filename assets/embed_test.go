package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"heart.png", "heart.png"},
		{"assets/heart.png", "heart.png"},
		{"./scripts/a.tengo", "scripts/a.tengo"},
		{"/home/me/game/assets/terrain.tmj", "terrain.tmj"},
		{"", "."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEmbeddedDefaults(t *testing.T) {
	for _, name := range []string{"player.png", "BombExploding.png", "heart.png", "game_over.png", "terrain.tmj", "terrain.tsj"} {
		if _, err := fs.Stat(Embedded(), name); err != nil {
			t.Fatalf("missing embedded asset %s: %v", name, err)
		}
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "terrain.tmj"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := Open(dir)

	data, err := fs.ReadFile(a, "terrain.tmj")
	if err != nil {
		t.Fatalf("read override: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("expected override contents, got %d bytes", len(data))
	}
	if _, err := fs.ReadFile(a, "heart.png"); err != nil {
		t.Fatalf("expected embedded fallback: %v", err)
	}
	if got := a.OSPath("scripts"); got != filepath.Join(dir, "scripts") {
		t.Fatalf("unexpected os path %q", got)
	}
	if Open("").OSPath("scripts") != "" {
		t.Fatalf("embedded-only assets have no os path")
	}
}
