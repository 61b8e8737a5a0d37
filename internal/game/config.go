package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/torchcrawl/internal/world"
)

// Config holds game configuration options.
type Config struct {
	Width   int  `env:"TORCHCRAWL_MAP_WIDTH"  envDefault:"100"`
	Height  int  `env:"TORCHCRAWL_MAP_HEIGHT" envDefault:"100"`
	ShowHUD bool `env:"TORCHCRAWL_SHOW_HUD"   envDefault:"true"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Width:   world.DefaultWidth,
		Height:  world.DefaultHeight,
		ShowHUD: true,
	}
}

// LoadConfig reads Config from environment variables and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse game env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the map can hold at least one room.
func (c Config) Validate() error {
	if c.Width < world.MinMapSize || c.Height < world.MinMapSize {
		return fmt.Errorf("map size %dx%d: %w", c.Width, c.Height, world.ErrMapTooSmall)
	}
	return nil
}
