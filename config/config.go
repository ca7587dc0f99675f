package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine settings. Zero values are replaced by defaults.
type Config struct {
	// AssetDir is a directory overriding the embedded assets. Empty means
	// embedded only.
	AssetDir string `yaml:"asset_dir"`
	Level    string `yaml:"level"`
	Scripts  string `yaml:"scripts"`

	PlayerSheet string `yaml:"player_sheet"`
	BombSheet   string `yaml:"bomb_sheet"`
	HeartImage  string `yaml:"heart_image"`
	BannerImage string `yaml:"game_over_image"`

	SpawnX int     `yaml:"spawn_x"`
	SpawnY int     `yaml:"spawn_y"`
	Lives  int     `yaml:"lives"`
	Speed  float64 `yaml:"speed"`

	BombLifetime   time.Duration `yaml:"bomb_lifetime"`
	CollisionRange int           `yaml:"collision_range"`
	Debounce       time.Duration `yaml:"debounce"`

	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`

	Debug       bool                `yaml:"debug"`
	WatchScript bool                `yaml:"watch_scripts"`
	Bindings    map[string][]string `yaml:"bindings"`
}

// Default returns a config with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "terrain.tmj"
	}
	if c.Scripts == "" {
		c.Scripts = "scripts"
	}
	if c.PlayerSheet == "" {
		c.PlayerSheet = "player.yaml"
	}
	if c.BombSheet == "" {
		c.BombSheet = "bomb.yaml"
	}
	if c.HeartImage == "" {
		c.HeartImage = "heart.png"
	}
	if c.BannerImage == "" {
		c.BannerImage = "game_over.png"
	}
	if c.SpawnX == 0 && c.SpawnY == 0 {
		c.SpawnX, c.SpawnY = 100, 100
	}
	if c.Lives <= 0 {
		c.Lives = 3
	}
	if c.Speed <= 0 {
		c.Speed = 128
	}
	if c.BombLifetime <= 0 {
		c.BombLifetime = 2100 * time.Millisecond
	}
	if c.CollisionRange <= 0 {
		c.CollisionRange = 32
	}
	if c.Debounce <= 0 {
		c.Debounce = 200 * time.Millisecond
	}
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = 800
	}
	if c.ScreenHeight <= 0 {
		c.ScreenHeight = 600
	}
}

// Load reads a YAML config file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Parse decodes YAML config data and applies defaults.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}
