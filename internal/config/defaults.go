package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Playfield: PlayfieldConfig{
			Cols: 0,
			Rows: 0,
		},
		Snake: BodyConfig{
			StartX:      0,
			StartY:      0,
			StartLength: 6,
			QueueLimit:  16,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			BaseDelay: 50 * time.Millisecond,
			Steps: []SpeedStep{
				{MinScore: 11, Delay: 40 * time.Millisecond},
				{MinScore: 20, Delay: 35 * time.Millisecond},
				{MinScore: 30, Delay: 30 * time.Millisecond},
				{MinScore: 50, Delay: 25 * time.Millisecond},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
