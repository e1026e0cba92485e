package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Registered variant IDs.
const (
	IDClassic = "snake"        // wraps around the edges
	IDWalled  = "snake_walled" // edges are lethal
)

func init() {
	registry.Register(IDClassic, func(cfg config.SnakeConfig) registry.Game {
		return New(BoundaryWrap, cfg)
	})
	registry.Register(IDWalled, func(cfg config.SnakeConfig) registry.Game {
		return New(BoundaryLethal, cfg)
	})
}
