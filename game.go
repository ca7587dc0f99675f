package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/adventure/config"
	"github.com/milk9111/adventure/engine"
	"github.com/milk9111/adventure/input"
	"github.com/milk9111/adventure/render"
)

// Game adapts the engine to ebiten's update and draw callbacks.
type Game struct {
	frames int

	engine   *engine.Engine
	renderer *render.Ebiten
	input    *input.Ebiten
	pauseUI  *ebitenui.UI

	width  int
	height int
	debug  bool
	quit   bool
}

func NewGame(eng *engine.Engine, r *render.Ebiten, in *input.Ebiten, cfg config.Config) *Game {
	g := &Game{
		engine:   eng,
		renderer: r,
		input:    in,
		width:    cfg.ScreenWidth,
		height:   cfg.ScreenHeight,
		debug:    cfg.Debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.input.Poll()
	g.engine.ProcessFrame()
	if g.engine.Paused() {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen)
	g.engine.RenderFrame()

	if g.engine.Paused() {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		pos := g.engine.PlayerPosition()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Tick: %d    Player: %d,%d    Objects: %d",
			g.frames, ebiten.ActualFPS(), g.engine.Tick(), pos.X, pos.Y, g.engine.ObjectCount()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
