package obj

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/milk9111/adventure/component"
)

const (
	DefaultLives = 3
	DefaultSpeed = 128.0 // pixels per second
)

// Activity is what the player is doing.
type Activity int

const (
	ActivityNone Activity = iota
	ActivityIdle
	ActivityMove
	ActivityAttack
	ActivityGameOver
)

func (a Activity) String() string {
	switch a {
	case ActivityIdle:
		return "Idle"
	case ActivityMove:
		return "Move"
	case ActivityAttack:
		return "Attack"
	case ActivityGameOver:
		return "GameOver"
	default:
		return "None"
	}
}

// Direction is the way the player faces.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionDown
	DirectionUp
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "Down"
	case DirectionUp:
		return "Up"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	default:
		return "None"
	}
}

var directions = []Direction{DirectionDown, DirectionUp, DirectionLeft, DirectionRight}

// State is the (activity, direction) pair driving the player's animation.
type State struct {
	Activity  Activity
	Direction Direction
}

// AnimationName returns the sprite animation shown for s, or "" for none.
func (s State) AnimationName() string {
	switch {
	case s.Activity == ActivityGameOver:
		return "GameOver"
	case s.Activity == ActivityNone && s.Direction == DirectionNone:
		return ""
	default:
		return s.Activity.String() + s.Direction.String()
	}
}

// Movement holds one weight per directional input, normally 0 or 1.
type Movement struct {
	Up    float64
	Down  float64
	Left  float64
	Right float64
}

// Active returns how many directions carry a non-zero weight.
func (m Movement) Active() int {
	n := 0
	for _, w := range []float64{m.Up, m.Down, m.Left, m.Right} {
		if w != 0 {
			n++
		}
	}
	return n
}

// Player is the controllable object. It is never reaped.
type Player struct {
	Renderable

	lives int
	speed float64
	state State
}

// RequiredAnimations lists every animation a player sprite sheet must carry.
func RequiredAnimations() []string {
	names := []string{ActivityGameOver.String()}
	for _, a := range []Activity{ActivityIdle, ActivityMove, ActivityAttack} {
		for _, d := range directions {
			names = append(names, a.String()+d.String())
		}
	}
	return names
}

// NewPlayer creates a player idling downwards at pos. The sheet must define
// every name in RequiredAnimations.
func NewPlayer(sheet *component.SpriteSheet, pos image.Point, lives int, speed float64) (*Player, error) {
	if sheet == nil {
		return nil, fmt.Errorf("obj: player needs a sprite sheet")
	}
	for _, name := range RequiredAnimations() {
		if !sheet.Has(name) {
			return nil, fmt.Errorf("obj: player sheet: %w: %q", component.ErrUnknownAnimation, name)
		}
	}
	if lives <= 0 {
		lives = DefaultLives
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}

	p := &Player{
		Renderable: Renderable{id: NextID(), pos: pos, sheet: sheet},
		lives:      lives,
		speed:      speed,
	}
	p.SetState(ActivityIdle, DirectionDown)
	return p, nil
}

func (p *Player) Lives() int { return p.lives }

func (p *Player) State() State { return p.state }

func (p *Player) Speed() float64 { return p.speed }

// SetState switches to (a, d) and activates the matching animation. It does
// nothing once the player is in GameOver or when the pair is unchanged.
func (p *Player) SetState(a Activity, d Direction) {
	if p.state.Activity == ActivityGameOver {
		return
	}
	next := State{Activity: a, Direction: d}
	if next == p.state {
		return
	}
	if err := p.sheet.ActivateAnimation(next.AnimationName()); err != nil {
		log.Printf("player: %v", err)
	}
	p.state = next
}

// UpdatePosition moves the player by the given input weights over elapsed
// and derives the new state from the displacement. Tile size is accepted for
// callers working in tile units and does not scale movement.
func (p *Player) UpdatePosition(m Movement, tileWidth, tileHeight int, elapsed time.Duration) {
	_, _ = tileWidth, tileHeight
	if p.state.Activity == ActivityGameOver {
		return
	}

	secs := elapsed.Seconds()
	step := func(w float64) int { return int(w * p.speed * secs) }
	dx := step(m.Right) - step(m.Left)
	dy := step(m.Down) - step(m.Up)

	prev := p.pos
	p.pos = p.pos.Add(image.Pt(dx, dy))

	activity := ActivityMove
	if p.pos == prev {
		activity = ActivityIdle
	}

	dir := p.state.Direction
	switch {
	case p.pos.Y < prev.Y:
		dir = DirectionUp
	case p.pos.Y > prev.Y:
		dir = DirectionDown
	case p.pos.X < prev.X:
		dir = DirectionLeft
	case p.pos.X > prev.X:
		dir = DirectionRight
	}

	p.SetState(activity, dir)
}

// Attack switches to the attack animation in the current direction.
func (p *Player) Attack() {
	if p.state.Activity == ActivityGameOver {
		return
	}
	p.SetState(ActivityAttack, p.state.Direction)
}

// LoseLife takes one life; the last one ends the game.
func (p *Player) LoseLife() {
	if p.lives <= 0 {
		return
	}
	p.lives--
	log.Printf("player: lost a life, %d left", p.lives)
	if p.lives == 0 {
		p.SetState(ActivityGameOver, p.state.Direction)
	}
}

// GameOver reports whether the player reached the terminal state.
func (p *Player) GameOver() bool {
	return p.state.Activity == ActivityGameOver
}
