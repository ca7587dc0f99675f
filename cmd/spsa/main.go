package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/urfave/cli/v3"

	"github.com/milk9111/adventure/assets"
	"github.com/milk9111/adventure/component"
	"github.com/milk9111/adventure/prefabs"
	"github.com/milk9111/adventure/render"
)

const viewSize = 512

// previewGame plays the animations of one sprite sheet, one at a time.
type previewGame struct {
	renderer *render.Ebiten
	sheet    *component.SpriteSheet
	names    []string
	current  int
	scale    int
	last     time.Time
}

func (g *previewGame) activate(i int) {
	g.current = (i + len(g.names)) % len(g.names)
	if err := g.sheet.ActivateAnimation(g.names[g.current]); err != nil {
		log.Printf("spsa: %v", err)
	}
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.activate(g.current + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.activate(g.current - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.activate(g.current)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	now := time.Now()
	g.sheet.Advance(now.Sub(g.last))
	g.last = now
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	r := g.renderer
	r.Begin(screen)
	r.SetDrawColor(0x20, 0x20, 0x20, 0xff)
	r.ClearScreen()

	src := g.sheet.CurrentSourceRegion()
	if !src.Empty() {
		w, h := src.Dx()*g.scale, src.Dy()*g.scale
		x, y := (viewSize-w)/2, (viewSize-h)/2
		r.SetDrawColor(0x40, 0x40, 0x40, 0xff)
		r.FillRect(image.Rect(x, y, x+w, y+h))
		r.RenderTexture(g.sheet.TextureID, src, image.Rect(x, y, x+w, y+h))
	}
	r.PresentFrame()

	state := "playing"
	if g.sheet.Finished() {
		state = "finished"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  %s\n<- -> switch, space restart, esc quit",
		g.sheet.ActiveName(), g.sheet.CurrentFrame(), state))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func run(ctx context.Context, cmd *cli.Command) error {
	fsys := assets.Open(cmd.String("assets"))
	r := render.NewEbiten(fsys, viewSize, viewSize)

	sheet, err := prefabs.LoadSpriteSheet(fsys, cmd.String("sheet"), r)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(sheet.Animations))
	for name := range sheet.Animations {
		names = append(names, name)
	}
	if len(names) == 0 {
		return fmt.Errorf("spsa: %s has no animations", cmd.String("sheet"))
	}
	slices.Sort(names)

	g := &previewGame{renderer: r, sheet: sheet, names: names, scale: max(1, int(cmd.Int("scale"))), last: time.Now()}
	start := 0
	if want := cmd.String("animation"); want != "" {
		if start = slices.Index(names, want); start < 0 {
			return fmt.Errorf("spsa: %w: %q", component.ErrUnknownAnimation, want)
		}
	}
	g.activate(start)

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Sprite Sheet Preview")
	return ebiten.RunGame(g)
}

func main() {
	cmd := &cli.Command{
		Name:  "spsa",
		Usage: "preview sprite sheet animations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sheet", Usage: "sprite sheet spec", Value: "player.yaml"},
			&cli.StringFlag{Name: "animation", Usage: "animation to start with"},
			&cli.StringFlag{Name: "assets", Usage: "asset directory overriding the built-in assets"},
			&cli.IntFlag{Name: "scale", Usage: "zoom factor", Value: 4},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
