package input

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("parse %s: %v", a, err)
		}
		if got != a {
			t.Fatalf("expected %v, got %v", a, got)
		}
	}
	if _, err := ParseAction("jump"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"ArrowUp", ebiten.KeyArrowUp},
		{"p", ebiten.KeyP},
		{"Space", ebiten.KeySpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyByName(tt.name)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
	if _, err := KeyByName("NotAKey"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	_, err := KeyByName("ArowUp")
	if err == nil || !strings.Contains(err.Error(), "did you mean ArrowUp") {
		t.Fatalf("expected suggestion for misspelled key, got %v", err)
	}
}

func TestNewEbitenBindings(t *testing.T) {
	e, err := NewEbiten(map[string][]string{"pause": {"Escape", "P"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := e.keys[TogglePause]; len(got) != 2 || got[0] != ebiten.KeyEscape {
		t.Fatalf("unexpected pause keys %v", got)
	}
	if got := e.keys[Up]; len(got) != 1 || got[0] != ebiten.KeyArrowUp {
		t.Fatalf("expected default up binding, got %v", got)
	}

	if _, err := NewEbiten(map[string][]string{"fly": {"F"}}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	if _, err := NewEbiten(map[string][]string{"up": {"Nope"}}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestFixed(t *testing.T) {
	f := NewFixed()
	var clicks [][2]int
	f.OnMouseClick(func(x, y int) { clicks = append(clicks, [2]int{x, y}) })

	f.Set(Left, true)
	if !f.Pressed(Left) || f.Pressed(Right) {
		t.Fatalf("unexpected pressed state")
	}
	f.Release()
	if f.Pressed(Left) {
		t.Fatalf("expected release")
	}

	f.Click(3, 4)
	if len(clicks) != 1 || clicks[0] != [2]int{3, 4} {
		t.Fatalf("unexpected clicks %v", clicks)
	}
}
