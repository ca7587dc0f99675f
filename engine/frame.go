package engine

import (
	"image"
	"log"

	"github.com/milk9111/adventure/input"
	"github.com/milk9111/adventure/obj"
	"github.com/milk9111/adventure/world"
)

const (
	heartSize    = 32
	heartSpacing = 24
	heartMargin  = 10
	bannerSize   = 256
)

// ProcessFrame advances the game by the time since the last processed
// frame. It does nothing before SetupWorld, after game over and while
// paused.
func (e *Engine) ProcessFrame() {
	if e.player == nil || e.gameOver {
		return
	}
	now := e.now()

	if e.input.Pressed(input.TogglePause) && e.pauseToggle.allow(now) {
		e.setPaused(!e.paused, now)
	}
	if e.paused {
		return
	}

	elapsed := now.Sub(e.lastUpdate)
	e.lastUpdate = now
	e.tick++

	move := obj.Movement{
		Up:    weight(e.input.Pressed(input.Up)),
		Down:  weight(e.input.Pressed(input.Down)),
		Left:  weight(e.input.Pressed(input.Left)),
		Right: weight(e.input.Pressed(input.Right)),
	}
	attack := e.input.Pressed(input.Attack) && move.Active() <= 1
	spawn := e.input.Pressed(input.Spawn)

	e.player.UpdatePosition(move, e.level.TileWidth, e.level.TileHeight, elapsed)
	if attack {
		e.player.Attack()
	}

	if e.player.Lives() <= 0 {
		e.gameOver = true
		log.Println("engine: game over")
		return
	}

	e.runScripts()

	if spawn {
		pos := e.player.Position()
		if err := e.AddBomb(pos.X, pos.Y, false); err != nil {
			log.Printf("engine: spawn: %v", err)
		}
	}

	if e.input.Pressed(input.ToggleNight) && e.nightToggle.allow(now) {
		e.night = !e.night
		if e.night {
			log.Println("engine: night mode on")
		} else {
			log.Println("engine: day mode on")
		}
	}
}

func (e *Engine) runScripts() {
	e.scripts.Reload()
	if err := e.scripts.ExecuteAll(e, e.commands.Push); err != nil {
		log.Printf("engine: scripts: %v", err)
	}
	for _, cmd := range e.commands.Drain() {
		switch cmd.Kind {
		case world.CommandSpawnBomb:
			if err := e.AddBomb(cmd.At.X, cmd.At.Y, false); err != nil {
				log.Printf("engine: %s: spawn: %v", cmd.Source, err)
			}
		default:
			log.Printf("engine: %s: unknown command %q", cmd.Source, cmd.Kind)
		}
	}
}

func weight(pressed bool) float64 {
	if pressed {
		return 1
	}
	return 0
}

// RenderFrame draws the scene: terrain, objects, player, the night overlay,
// the HUD and the game over and pause screens.
func (e *Engine) RenderFrame() {
	if e.player == nil {
		return
	}
	r := e.renderer
	now := e.now()
	dt := now.Sub(e.lastRender)
	e.lastRender = now
	if e.paused {
		dt = 0
	}

	r.SetDrawColor(0, 0, 0, 255)
	r.ClearScreen()

	pos := e.player.Position()
	r.CameraLookAt(pos.X, pos.Y)

	e.renderTerrain()

	e.registry.Update(dt)
	e.registry.RenderAndReap(r, now, e.player)

	e.player.Update(dt)
	e.player.Render(r)

	w, h := r.WindowSize()
	screen := image.Rect(0, 0, w, h)

	if e.night {
		r.CameraLookAt(0, 0)
		r.SetDrawColor(15, 15, 40, 100)
		r.FillRect(screen)
	}

	r.CameraLookAt(0, 0)
	for i := range e.player.Lives() {
		x := heartMargin + i*heartSpacing
		r.RenderTexture(e.heart.ID, e.heart.Bounds(), image.Rect(x, heartMargin, x+heartSize, heartMargin+heartSize))
	}

	if e.gameOver {
		x, y := (w-bannerSize)/2, (h-bannerSize)/2
		r.RenderTexture(e.banner.ID, e.banner.Bounds(), image.Rect(x, y, x+bannerSize, y+bannerSize))
	}

	if e.paused {
		r.SetDrawColor(0, 0, 0, 128)
		r.FillRect(screen)
	}

	r.CameraLookAt(pos.X, pos.Y)
	r.PresentFrame()
}

func (e *Engine) renderTerrain() {
	tw, th := e.level.TileWidth, e.level.TileHeight
	for c := range e.level.Cells() {
		tile, ok := e.tiles[c.TileID]
		if !ok {
			continue
		}
		iw, ih := tile.Size()
		x, y := c.Col*tw, c.Row*th
		e.renderer.RenderTexture(tile.TextureID, image.Rect(0, 0, iw, ih), image.Rect(x, y, x+iw, y+ih))
	}
}
