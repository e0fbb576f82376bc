package replay

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrMismatch is returned when a re-simulation ends in a different state
// than the one the recording was saved with.
var ErrMismatch = errors.New("replay: final state does not match recording")

// Player steps a fresh engine through a recording one tick at a time.
type Player struct {
	game   *snake.Game
	events []Event
	idx    int
	done   int // Ticks already played from events[idx]
	ticks  int
}

// NewPlayer builds a Ready engine seeded from the recording.
func NewPlayer(rec Recording) (*Player, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	g, err := snake.Initialize(rec.Width, rec.Height, rand.New(rand.NewSource(rec.Seed))) //#nosec G404 -- replay must match the recorded source
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	return &Player{game: g, events: rec.Events}, nil
}

// Step applies any pending commands and then advances one tick.
// It returns false once the recording is exhausted; trailing commands are
// still applied on that final call.
func (p *Player) Step() bool {
	for p.idx < len(p.events) {
		e := p.events[p.idx]
		if !e.IsTick() {
			p.game.Apply(e.Action)
			p.idx++
			continue
		}

		p.game.Tick()
		p.ticks++
		p.done++
		if p.done >= e.Ticks {
			p.idx++
			p.done = 0
		}
		return true
	}
	return false
}

// Done reports whether every event has been played.
func (p *Player) Done() bool {
	return p.idx >= len(p.events)
}

// Ticks returns how many ticks have been played.
func (p *Player) Ticks() int {
	return p.ticks
}

// Snapshot returns the engine state after the last step.
func (p *Player) Snapshot() snake.Snapshot {
	return p.game.Snapshot()
}

// Play re-simulates a whole recording and returns the final snapshot.
// If the recording carries a final hash it must match.
func Play(rec Recording) (snake.Snapshot, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return snake.Snapshot{}, err
	}
	for p.Step() {
	}

	snap := p.Snapshot()
	if rec.FinalHash != 0 && snap.Hash() != rec.FinalHash {
		return snap, ErrMismatch
	}
	return snap, nil
}
