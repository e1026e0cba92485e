// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import "time"

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Snake      BodyConfig       `yaml:"snake"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the grid size. Zero fits the grid to the screen.
type PlayfieldConfig struct {
	Cols int `yaml:"cols" validate:"min=0,max=1024"`
	Rows int `yaml:"rows" validate:"min=0,max=1024"`
}

// BodyConfig defines how the snake spawns and buffers input.
type BodyConfig struct {
	StartX      int `yaml:"start_x" validate:"min=0"`
	StartY      int `yaml:"start_y" validate:"min=0"`
	StartLength int `yaml:"start_length" validate:"min=1,max=256"`
	QueueLimit  int `yaml:"queue_limit" validate:"min=1,max=256"`
}

// DifficultyConfig defines how the tick delay shrinks as score grows.
type DifficultyConfig struct {
	Enabled   bool          `yaml:"enabled"`
	BaseDelay time.Duration `yaml:"base_delay" validate:"gt=0"`
	Steps     []SpeedStep   `yaml:"steps" validate:"dive"`
}

// SpeedStep switches the tick delay once score reaches MinScore.
type SpeedStep struct {
	MinScore int           `yaml:"min_score" validate:"min=1"`
	Delay    time.Duration `yaml:"delay" validate:"gt=0"`
}

// DelayFor returns the tick delay for a score. It depends on nothing but
// the score, so it can be recomputed every tick.
func (d DifficultyConfig) DelayFor(score int) time.Duration {
	delay := d.BaseDelay
	if !d.Enabled {
		return delay
	}
	for _, step := range d.Steps {
		if score < step.MinScore {
			break
		}
		delay = step.Delay
	}
	return delay
}

// Level returns the index of the active speed step, 0 being the base delay.
func (d DifficultyConfig) Level(score int) int {
	if !d.Enabled {
		return 0
	}
	level := 0
	for i, step := range d.Steps {
		if score < step.MinScore {
			break
		}
		level = i + 1
	}
	return level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// DelayScaleForPreset returns the factor applied to every delay.
func DelayScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 2.0
	case DifficultyHard:
		return 0.8
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
