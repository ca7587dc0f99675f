package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sahilm/fuzzy"
)

// DefaultBindings maps each action to keyboard key names.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"up":     {"ArrowUp"},
		"down":   {"ArrowDown"},
		"left":   {"ArrowLeft"},
		"right":  {"ArrowRight"},
		"attack": {"A"},
		"spawn":  {"B"},
		"pause":  {"P"},
		"night":  {"N"},
	}
}

var gamepadButtons = map[Action]ebiten.StandardGamepadButton{
	Up:          ebiten.StandardGamepadButtonLeftTop,
	Down:        ebiten.StandardGamepadButtonLeftBottom,
	Left:        ebiten.StandardGamepadButtonLeftLeft,
	Right:       ebiten.StandardGamepadButtonLeftRight,
	Attack:      ebiten.StandardGamepadButtonRightBottom,
	Spawn:       ebiten.StandardGamepadButtonRightRight,
	TogglePause: ebiten.StandardGamepadButtonCenterRight,
	ToggleNight: ebiten.StandardGamepadButtonRightTop,
}

// Ebiten reads keyboard, the first standard gamepad and the left mouse
// button. Spawn fires once per press; every other action reports whether it
// is held.
type Ebiten struct {
	keys   map[Action][]ebiten.Key
	clicks []func(x, y int)
}

// NewEbiten resolves key names like "ArrowUp" or "P" for each action name.
// Actions missing from bindings fall back to DefaultBindings.
func NewEbiten(bindings map[string][]string) (*Ebiten, error) {
	merged := DefaultBindings()
	for name, keys := range bindings {
		if len(keys) > 0 {
			merged[name] = keys
		}
	}

	e := &Ebiten{keys: make(map[Action][]ebiten.Key)}
	for name, keyNames := range merged {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, keyName := range keyNames {
			k, err := KeyByName(keyName)
			if err != nil {
				return nil, fmt.Errorf("input: binding %s: %w", name, err)
			}
			e.keys[a] = append(e.keys[a], k)
		}
	}
	return e, nil
}

// KeyByName finds the ebiten key whose name matches, ignoring case.
func KeyByName(name string) (ebiten.Key, error) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	if m := fuzzy.Find(name, keyNames()); len(m) > 0 {
		return 0, fmt.Errorf("input: unknown key %q (did you mean %s?)", name, m[0].Str)
	}
	return 0, fmt.Errorf("input: unknown key %q", name)
}

func keyNames() []string {
	names := make([]string, 0, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names = append(names, k.String())
	}
	return names
}

// Poll dispatches mouse clicks. Call it once per update.
func (e *Ebiten) Poll() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, fn := range e.clicks {
		fn(x, y)
	}
}

func (e *Ebiten) Pressed(a Action) bool {
	edge := a == Spawn
	for _, k := range e.keys[a] {
		if edge && inpututil.IsKeyJustPressed(k) {
			return true
		}
		if !edge && ebiten.IsKeyPressed(k) {
			return true
		}
	}

	btn, ok := gamepadButtons[a]
	if !ok {
		return false
	}
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return false
		}
		if edge {
			return inpututil.IsStandardGamepadButtonJustPressed(id, btn)
		}
		return ebiten.IsStandardGamepadButtonPressed(id, btn)
	}
	return false
}

func (e *Ebiten) OnMouseClick(fn func(x, y int)) {
	if fn != nil {
		e.clicks = append(e.clicks, fn)
	}
}
