// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`
	Replay ReplayConfig `yaml:"replay"`
	Log    LogConfig    `yaml:"log"`
	Seed   int64        `yaml:"seed"` // 0 = seed from the clock
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the scheduler interval.
type TimingConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms"`
}

// ReplayConfig controls recording of sessions.
type ReplayConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty = no log output while playing
}

// TickInterval returns the scheduler interval as a duration.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMS) * time.Millisecond
}

// LogLevel parses the configured level. An empty level means info.
func (c SnakeConfig) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// Validate checks the fields the engine does not check itself.
// Board dimensions are validated by snake.Initialize.
func (c SnakeConfig) Validate() error {
	if c.Timing.TickIntervalMS <= 0 {
		return fmt.Errorf("config: tick_interval_ms must be positive, got %d", c.Timing.TickIntervalMS)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Replay.Enabled && c.Replay.DBPath == "" {
		return fmt.Errorf("config: replay.db_path is required when replays are enabled")
	}
	return nil
}

// ToRuntime converts the file configuration into the session runtime config.
func (c SnakeConfig) ToRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		GridW:        c.Grid.Width,
		GridH:        c.Grid.Height,
		TickInterval: c.TickInterval(),
		Seed:         c.Seed,
	}
}

// SizePreset represents a named board size.
type SizePreset string

const (
	SizeSmall   SizePreset = "small"
	SizeClassic SizePreset = "classic"
	SizeLarge   SizePreset = "large"
)

// SizePresets lists the presets in display order.
var SizePresets = []SizePreset{SizeSmall, SizeClassic, SizeLarge}

// GridForPreset returns the board size for a preset.
func GridForPreset(preset SizePreset) (GridConfig, bool) {
	switch preset {
	case SizeSmall:
		return GridConfig{Width: 12, Height: 12}, true
	case SizeClassic:
		return GridConfig{Width: 20, Height: 20}, true
	case SizeLarge:
		return GridConfig{Width: 32, Height: 24}, true
	default:
		return GridConfig{}, false
	}
}

// ApplySizePreset replaces the grid with a preset size.
func ApplySizePreset(cfg *SnakeConfig, preset SizePreset) error {
	grid, ok := GridForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown size preset %q", preset)
	}
	cfg.Grid = grid
	return nil
}
