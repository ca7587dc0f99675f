package engine

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"time"

	"github.com/milk9111/adventure/component"
	"github.com/milk9111/adventure/config"
	"github.com/milk9111/adventure/input"
	"github.com/milk9111/adventure/levels"
	"github.com/milk9111/adventure/obj"
	"github.com/milk9111/adventure/prefabs"
	"github.com/milk9111/adventure/render"
	"github.com/milk9111/adventure/script"
	"github.com/milk9111/adventure/world"
)

const explodeAnimation = "Explode"

// ErrNoWorld is returned by operations that need SetupWorld to have run.
var ErrNoWorld = errors.New("engine: world not set up")

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithAssets sets the file system levels, sprite sheets and scripts are
// read from. Texture paths are resolved by the renderer.
func WithAssets(fsys fs.FS) Option {
	return func(e *Engine) {
		e.assets = fsys
	}
}

// WithScriptWatch hot-reloads scripts edited under osDir.
func WithScriptWatch(osDir string) Option {
	return func(e *Engine) {
		e.watchDir = osDir
	}
}

// Engine runs the frame loop: input, player update, scripts, spawns and
// rendering. All methods must be called from the loop goroutine.
type Engine struct {
	cfg      config.Config
	renderer render.Renderer
	input    input.Source
	assets   fs.FS
	now      func() time.Time
	watchDir string

	level    *levels.Level
	tileSets map[string]*levels.TileSet
	tiles    levels.TileIndex
	player   *obj.Player
	registry *world.Registry
	bomb     *component.SpriteSheet
	heart    render.Texture
	banner   render.Texture

	paused   bool
	gameOver bool
	night    bool

	lastUpdate time.Time
	lastRender time.Time
	tick       int

	commands    world.CommandQueue
	scripts     *script.Host
	pauseToggle debouncer
	nightToggle debouncer
}

// New creates an engine without a world. Clicks reported by src spawn a
// bomb under the cursor. A nil src never reports input.
func New(cfg config.Config, r render.Renderer, src input.Source, opts ...Option) *Engine {
	cfg.ApplyDefaults()
	e := &Engine{
		cfg:         cfg,
		renderer:    r,
		input:       src,
		now:         time.Now,
		registry:    world.NewRegistry(),
		scripts:     script.NewHost(),
		pauseToggle: debouncer{window: cfg.Debounce},
		nightToggle: debouncer{window: cfg.Debounce},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.input == nil {
		e.input = input.NewFixed()
	}
	e.input.OnMouseClick(e.handleClick)
	return e
}

// SetupWorld loads everything the frame loop needs. On error the engine is
// left without a world.
func (e *Engine) SetupWorld() error {
	if e.renderer == nil {
		return fmt.Errorf("engine: nil renderer")
	}
	if e.assets == nil {
		return fmt.Errorf("engine: no asset file system")
	}
	cfg := e.cfg

	playerSheet, err := prefabs.LoadSpriteSheet(e.assets, cfg.PlayerSheet, e.renderer)
	if err != nil {
		return fmt.Errorf("engine: player sprite sheet: %w", err)
	}
	player, err := obj.NewPlayer(playerSheet, image.Pt(cfg.SpawnX, cfg.SpawnY), cfg.Lives, cfg.Speed)
	if err != nil {
		return fmt.Errorf("engine: player: %w", err)
	}

	bomb, err := prefabs.LoadSpriteSheet(e.assets, cfg.BombSheet, e.renderer)
	if err != nil {
		return fmt.Errorf("engine: bomb sprite sheet: %w", err)
	}
	if !bomb.Has(explodeAnimation) {
		return fmt.Errorf("engine: bomb sprite sheet: %w: %q", component.ErrUnknownAnimation, explodeAnimation)
	}

	heart, err := e.renderer.LoadTexture(cfg.HeartImage)
	if err != nil {
		return fmt.Errorf("engine: heart image: %w", err)
	}
	banner, err := e.renderer.LoadTexture(cfg.BannerImage)
	if err != nil {
		return fmt.Errorf("engine: game over image: %w", err)
	}

	lvl, err := levels.LoadLevel(e.assets, cfg.Level)
	if err != nil {
		return fmt.Errorf("engine: load level %s: %w", cfg.Level, err)
	}
	tileSets, index, err := e.loadTileSets(lvl)
	if err != nil {
		return fmt.Errorf("engine: level %s: %w", cfg.Level, err)
	}

	host := script.NewHost()
	if err := host.LoadAll(e.assets, cfg.Scripts); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if e.watchDir != "" {
		if err := host.Watch(e.watchDir); err != nil {
			log.Printf("engine: script hot reload disabled: %v", err)
		}
	}

	registry := world.NewRegistry()
	registry.CollisionRange = cfg.CollisionRange

	e.renderer.SetWorldBounds(lvl.PixelBounds())

	_ = e.scripts.Close()
	e.level = lvl
	e.tileSets = tileSets
	e.tiles = index
	e.player = player
	e.registry = registry
	e.bomb = bomb
	e.heart = heart
	e.banner = banner
	e.scripts = host
	e.paused, e.gameOver, e.night = false, false, false
	e.tick = 0
	e.lastUpdate = e.now()
	e.lastRender = e.lastUpdate

	log.Printf("engine: world ready: level %s %dx%d, %d tiles, %d scripts",
		cfg.Level, lvl.Width, lvl.Height, len(index), host.Len())
	return nil
}

func (e *Engine) loadTileSets(lvl *levels.Level) (map[string]*levels.TileSet, levels.TileIndex, error) {
	byName := make(map[string]*levels.TileSet, len(lvl.TileSets))
	sets := make([]*levels.TileSet, 0, len(lvl.TileSets))
	for _, ref := range lvl.TileSets {
		ts, err := levels.LoadTileSet(e.assets, lvl.TileSetPath(ref))
		if err != nil {
			return nil, nil, err
		}
		for _, tile := range ts.Tiles {
			tex, err := e.renderer.LoadTexture(tile.Image)
			if err != nil {
				return nil, nil, fmt.Errorf("tile set %s: tile %d: %w", ts.Name, tile.ID, err)
			}
			tile.TextureID = tex.ID
			if tile.ImageWidth <= 0 || tile.ImageHeight <= 0 {
				tile.ImageWidth, tile.ImageHeight = tex.Width, tex.Height
			}
		}
		byName[ts.Name] = ts
		sets = append(sets, ts)
	}

	index, err := levels.BuildIndex(sets...)
	if err != nil {
		return nil, nil, err
	}
	if err := lvl.Validate(index); err != nil {
		return nil, nil, err
	}
	return byName, index, nil
}

// AddBomb spawns an exploding bomb at (x, y). With translate set the point
// is in screen space and goes through the renderer's camera first.
func (e *Engine) AddBomb(x, y int, translate bool) error {
	if e.bomb == nil {
		return ErrNoWorld
	}
	at := image.Pt(x, y)
	if translate {
		at = e.renderer.ToWorldCoordinates(x, y)
	}

	sheet := e.bomb.Clone()
	if err := sheet.ActivateAnimation(explodeAnimation); err != nil {
		return fmt.Errorf("engine: bomb: %w", err)
	}
	b := obj.NewTemporary(sheet, at, e.cfg.BombLifetime, e.now())
	if err := e.registry.Register(b); err != nil {
		return fmt.Errorf("engine: bomb: %w", err)
	}
	return nil
}

func (e *Engine) handleClick(x, y int) {
	if e.paused || e.gameOver {
		return
	}
	if err := e.AddBomb(x, y, true); err != nil {
		log.Printf("engine: click at %d,%d: %v", x, y, err)
	}
}

// TogglePause flips the pause state, subject to the toggle debounce. It
// reports whether the state changed.
func (e *Engine) TogglePause() bool {
	now := e.now()
	if !e.pauseToggle.allow(now) {
		return false
	}
	e.setPaused(!e.paused, now)
	return true
}

func (e *Engine) setPaused(paused bool, now time.Time) {
	e.paused = paused
	if paused {
		log.Println("engine: game paused")
		return
	}
	// the paused interval must not turn into one long movement step
	e.lastUpdate = now
	log.Println("engine: game resumed")
}

func (e *Engine) PlayerPosition() image.Point {
	if e.player == nil {
		return image.Point{}
	}
	return e.player.Position()
}

func (e *Engine) Lives() int {
	if e.player == nil {
		return 0
	}
	return e.player.Lives()
}

func (e *Engine) Player() *obj.Player { return e.player }

func (e *Engine) Level() *levels.Level { return e.level }

// TileSet returns a loaded tile set by name.
func (e *Engine) TileSet(name string) *levels.TileSet { return e.tileSets[name] }

func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) GameOver() bool { return e.gameOver }

func (e *Engine) Night() bool { return e.night }

// Tick counts processed frames since the world was set up.
func (e *Engine) Tick() int { return e.tick }

func (e *Engine) ObjectCount() int { return e.registry.Len() }

func (e *Engine) Config() config.Config { return e.cfg }

// Close releases the script watcher.
func (e *Engine) Close() error {
	return e.scripts.Close()
}
