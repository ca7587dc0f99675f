package input

import "fmt"

// Action is a discrete input signal the engine asks about.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	Attack
	Spawn
	TogglePause
	ToggleNight

	actionCount
)

var actionNames = [actionCount]string{
	Up:          "up",
	Down:        "down",
	Left:        "left",
	Right:       "right",
	Attack:      "attack",
	Spawn:       "spawn",
	TogglePause: "pause",
	ToggleNight: "night",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction maps a binding name such as "pause" to its action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action %q", name)
}

// Source exposes the current input state.
type Source interface {
	Pressed(a Action) bool
	OnMouseClick(fn func(x, y int))
}

// Fixed is a Source whose state is set by code. It drives headless runs
// and tests.
type Fixed struct {
	Held map[Action]bool

	clicks []func(x, y int)
}

func NewFixed() *Fixed {
	return &Fixed{Held: make(map[Action]bool)}
}

func (f *Fixed) Pressed(a Action) bool {
	return f.Held[a]
}

// Set holds or releases a.
func (f *Fixed) Set(a Action, down bool) {
	f.Held[a] = down
}

// Release lets go of every action.
func (f *Fixed) Release() {
	clear(f.Held)
}

func (f *Fixed) OnMouseClick(fn func(x, y int)) {
	if fn != nil {
		f.clicks = append(f.clicks, fn)
	}
}

// Click delivers a mouse click at screen coordinates.
func (f *Fixed) Click(x, y int) {
	for _, fn := range f.clicks {
		fn(x, y)
	}
}
