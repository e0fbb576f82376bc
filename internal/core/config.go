package core

import "time"

// RuntimeConfig contains configuration passed to a session at start.
type RuntimeConfig struct {
	GridW        int           // Board width in cells
	GridH        int           // Board height in cells
	TickInterval time.Duration // Time between simulation ticks while running
	Seed         int64         // RNG seed for deterministic food placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW:        20,
		GridH:        20,
		TickInterval: 120 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// Grid returns the board dimensions as a Grid.
func (c RuntimeConfig) Grid() Grid {
	return Grid{W: c.GridW, H: c.GridH}
}
