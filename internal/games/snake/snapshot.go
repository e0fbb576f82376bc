package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot is a read-only copy of the game for rendering and replay checks.
// It always reflects a fully resolved tick.
type Snapshot struct {
	Tick      uint64
	Width     int
	Height    int
	Segments  []core.Point // Head at index 0
	Food      core.Point
	HasFood   bool
	Direction Direction
	Score     int
	HighScore int
	Lifecycle State
	Won       bool
	NewHigh   bool // Set when the ended game raised the session best
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	segments := make([]core.Point, len(g.snake))
	copy(segments, g.snake)

	return Snapshot{
		Tick:      g.tick,
		Width:     g.grid.W,
		Height:    g.grid.H,
		Segments:  segments,
		Food:      g.food,
		HasFood:   g.hasFood,
		Direction: g.direction,
		Score:     g.scores.Score(),
		HighScore: g.scores.HighScore(),
		Lifecycle: g.state,
		Won:       g.won,
		NewHigh:   g.newHigh,
	}
}

// Head returns the head cell.
func (s Snapshot) Head() core.Point {
	if len(s.Segments) == 0 {
		return core.Pt(-1, -1)
	}
	return s.Segments[0]
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Segments)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + uint64(s.Width)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Height)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.HighScore) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Direction) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Lifecycle) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Food.X+1)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Food.Y+1)  //#nosec G115 -- hash computation

	for _, p := range s.Segments {
		h = h*31 + uint64(p.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Y) //#nosec G115 -- hash computation
	}
	return h
}
