package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/milk9111/adventure/assets"
	"github.com/milk9111/adventure/config"
	"github.com/milk9111/adventure/engine"
	"github.com/milk9111/adventure/input"
	"github.com/milk9111/adventure/render"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: loading .env: %v", err)
		}
	} else {
		log.Println("loaded environment from .env")
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "adventure",
		Usage: "walk a tile map and dodge bombs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file", Sources: cli.EnvVars("ADVENTURE_CONFIG")},
			&cli.StringFlag{Name: "assets", Usage: "asset directory overriding the built-in assets", Sources: cli.EnvVars("ADVENTURE_ASSETS")},
			&cli.StringFlag{Name: "level", Usage: "level file inside the asset directory", Sources: cli.EnvVars("ADVENTURE_LEVEL")},
			&cli.BoolFlag{Name: "debug", Usage: "show the FPS overlay", Sources: cli.EnvVars("ADVENTURE_DEBUG")},
			&cli.BoolFlag{Name: "watch", Usage: "reload scripts when they change on disk", Sources: cli.EnvVars("ADVENTURE_WATCH")},
			&cli.BoolFlag{Name: "headless", Usage: "run without a window", Sources: cli.EnvVars("ADVENTURE_HEADLESS")},
			&cli.IntFlag{Name: "frames", Usage: "frames to run in headless mode", Value: 600},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOptional(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("assets") {
		cfg.AssetDir = cmd.String("assets")
	}
	if cmd.IsSet("level") {
		cfg.Level = cmd.String("level")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("watch") {
		cfg.WatchScript = cmd.Bool("watch")
	}

	fsys := assets.Open(cfg.AssetDir)
	if cmd.Bool("headless") {
		return runHeadless(ctx, cfg, fsys, int(cmd.Int("frames")))
	}
	return runWindow(cfg, fsys)
}

func runWindow(cfg config.Config, fsys *assets.FS) error {
	r := render.NewEbiten(fsys, cfg.ScreenWidth, cfg.ScreenHeight)
	in, err := input.NewEbiten(cfg.Bindings)
	if err != nil {
		return err
	}

	opts := []engine.Option{engine.WithAssets(fsys)}
	if cfg.WatchScript {
		if dir := fsys.OSPath(cfg.Scripts); dir != "" {
			opts = append(opts, engine.WithScriptWatch(dir))
		} else {
			log.Println("watch: scripts are embedded, nothing to watch")
		}
	}

	eng := engine.New(cfg, r, in, opts...)
	if err := eng.SetupWorld(); err != nil {
		return err
	}
	defer eng.Close()

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("adventure")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(eng, r, in, cfg)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// runHeadless drives the loop against a recording renderer at a fixed 60
// frames per second of simulated time.
func runHeadless(ctx context.Context, cfg config.Config, fsys *assets.FS, frames int) error {
	const step = time.Second / 60

	r := render.NewRecorder(fsys, cfg.ScreenWidth, cfg.ScreenHeight)
	in := input.NewFixed()
	now := time.Now()
	clock := func() time.Time { return now }

	eng := engine.New(cfg, r, in, engine.WithAssets(fsys), engine.WithClock(clock))
	if err := eng.SetupWorld(); err != nil {
		return err
	}
	defer eng.Close()

	in.Set(input.Right, true)
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		in.Set(input.Spawn, i == frames/2)
		now = now.Add(step)
		eng.ProcessFrame()
		eng.RenderFrame()
		r.Reset()
		if eng.GameOver() {
			break
		}
	}

	log.Printf("headless: %d ticks, player at %v, %d lives, %d objects, game over %v",
		eng.Tick(), eng.PlayerPosition(), eng.Lives(), eng.ObjectCount(), eng.GameOver())
	return nil
}
