package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"iter"
	"path"
)

var (
	ErrInvalidLevel = errors.New("levels: invalid level")
	ErrUnknownTile  = errors.New("levels: unknown tile")
)

// Level is a Tiled-style tile map: a grid of Width×Height cells of
// TileWidth×TileHeight pixels, drawn layer by layer.
type Level struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []Layer      `json:"layers"`
	TileSets   []TileSetRef `json:"tilesets"`

	// path the level was loaded from; tile set sources resolve against it
	source string
}

// Layer is one plane of tile references. Each datum is tile id + 1, with 0
// meaning an empty cell; the cell at (col, row) is Data[row*Width+col].
type Layer struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []int  `json:"data"`
}

// TileSetRef points at an external tile set file.
type TileSetRef struct {
	FirstGID int    `json:"firstgid"`
	Source   string `json:"source"`
}

// TileSet is a named, ordered collection of tiles.
type TileSet struct {
	Name       string  `json:"name"`
	TileWidth  int     `json:"tilewidth"`
	TileHeight int     `json:"tileheight"`
	Tiles      []*Tile `json:"tiles"`
}

// Tile is a single image tile. TextureID is assigned once the image is
// loaded by a renderer.
type Tile struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`

	TextureID int `json:"-"`
}

// TileIndex maps globally unique tile ids to tiles across all tile sets.
type TileIndex map[int]*Tile

// Cell is one non-empty grid cell of a layer.
type Cell struct {
	Layer  int
	Col    int
	Row    int
	TileID int
}

// LoadLevel reads and validates a level from fsys.
func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	lvl.source = name

	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, lvl.Width, lvl.Height)
	}
	if lvl.TileWidth <= 0 || lvl.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile dimensions %dx%d", ErrInvalidLevel, lvl.TileWidth, lvl.TileHeight)
	}

	// only tile layers carry grid data
	layers := lvl.Layers[:0]
	for _, layer := range lvl.Layers {
		if layer.Type != "" && layer.Type != "tilelayer" {
			continue
		}
		if layer.Width == 0 {
			layer.Width = lvl.Width
		}
		if layer.Width < lvl.Width || len(layer.Data) < layer.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %q holds %d cells at width %d, need %dx%d",
				ErrInvalidLevel, layer.Name, len(layer.Data), layer.Width, lvl.Width, lvl.Height)
		}
		layers = append(layers, layer)
	}
	lvl.Layers = layers

	return &lvl, nil
}

// TileSetPath resolves a tile set reference against the level's location.
func (l *Level) TileSetPath(ref TileSetRef) string {
	if l == nil {
		return ref.Source
	}
	return path.Join(path.Dir(l.source), ref.Source)
}

// PixelBounds returns the world rectangle covered by the grid.
func (l *Level) PixelBounds() image.Rectangle {
	if l == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, l.Width*l.TileWidth, l.Height*l.TileHeight)
}

// Cells yields every non-empty cell, layer by layer, column-major within a
// layer.
func (l *Level) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if l == nil {
			return
		}
		for li, layer := range l.Layers {
			for col := 0; col < l.Width; col++ {
				for row := 0; row < l.Height; row++ {
					ref := layer.Data[row*layer.Width+col]
					if ref == 0 {
						continue
					}
					if !yield(Cell{Layer: li, Col: col, Row: row, TileID: ref - 1}) {
						return
					}
				}
			}
		}
	}
}

// Validate checks that every referenced tile resolves in index.
func (l *Level) Validate(index TileIndex) error {
	for c := range l.Cells() {
		if _, ok := index[c.TileID]; !ok {
			return fmt.Errorf("%w: id %d in layer %q at (%d,%d)", ErrUnknownTile, c.TileID, l.Layers[c.Layer].Name, c.Col, c.Row)
		}
	}
	return nil
}

// LoadTileSet reads a tile set from fsys. Tile image paths are rewritten to
// be relative to the root of fsys.
func LoadTileSet(fsys fs.FS, name string) (*TileSet, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read tile set: %w", err)
	}
	var ts TileSet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("unmarshal tile set %s: %w", name, err)
	}
	if ts.Name == "" {
		return nil, fmt.Errorf("tile set %s: missing name", name)
	}
	dir := path.Dir(name)
	for _, tile := range ts.Tiles {
		if tile == nil || tile.Image == "" {
			return nil, fmt.Errorf("tile set %s: tile without image", name)
		}
		tile.Image = path.Join(dir, tile.Image)
	}
	return &ts, nil
}

// BuildIndex merges tile sets into one id-keyed index. Duplicate ids are an
// error because ids must be globally unique.
func BuildIndex(sets ...*TileSet) (TileIndex, error) {
	index := make(TileIndex)
	for _, ts := range sets {
		if ts == nil {
			continue
		}
		for _, tile := range ts.Tiles {
			if prev, ok := index[tile.ID]; ok {
				return nil, fmt.Errorf("levels: tile id %d defined twice (%s, %s)", tile.ID, prev.Image, tile.Image)
			}
			index[tile.ID] = tile
		}
	}
	return index, nil
}

// Size returns the tile's pixel size.
func (t *Tile) Size() (int, int) {
	if t == nil {
		return 0, 0
	}
	return t.ImageWidth, t.ImageHeight
}
