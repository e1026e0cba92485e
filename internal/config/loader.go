package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by LoadSnake when no config file was found.
const SourceEmbedded = "embedded"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateDifficulty, DifficultyConfig{})
	return v
}

// validateDifficulty requires steps ordered by score that never slow the game down.
func validateDifficulty(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(DifficultyConfig)
	if !ok {
		return
	}

	prevScore := 0
	prevDelay := d.BaseDelay
	for i, step := range d.Steps {
		name := fmt.Sprintf("Steps[%d]", i)
		if step.MinScore <= prevScore {
			sl.ReportError(step.MinScore, name+".MinScore", "MinScore", "ascending", "")
		}
		if step.Delay > prevDelay {
			sl.ReportError(step.Delay, name+".Delay", "Delay", "nonincreasing", "")
		}
		prevScore = step.MinScore
		prevDelay = step.Delay
	}
}

// Validate checks a config against its field rules.
func Validate(cfg SnakeConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid snake config: %w", err)
	}
	return nil
}

// ParseSnake decodes YAML on top of the defaults and validates the result.
// Keys missing from data keep their default values.
func ParseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse snake config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSnake loads Snake configuration and reports where it came from.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSnakeConfig(), "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseSnake(data)
		if err != nil {
			return cfg, customPath, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSnake(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "snake.yaml")
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := ParseSnake(data); err == nil {
			return cfg, localPath, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// ParsePreset converts a flag value into a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	scale := DelayScaleForPreset(preset)
	cfg.Difficulty.BaseDelay = scaleDelay(cfg.Difficulty.BaseDelay, scale)
	steps := make([]SpeedStep, len(cfg.Difficulty.Steps))
	for i, step := range cfg.Difficulty.Steps {
		steps[i] = SpeedStep{MinScore: step.MinScore, Delay: scaleDelay(step.Delay, scale)}
	}
	cfg.Difficulty.Steps = steps
}

func scaleDelay(d time.Duration, scale float64) time.Duration {
	scaled := time.Duration(float64(d) * scale)
	if scaled < time.Millisecond {
		scaled = time.Millisecond
	}
	return scaled
}
