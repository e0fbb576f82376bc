// Package replay records the inputs of a snake session and re-simulates them.
// A recording is the board size, the RNG seed and the ordered stream of
// actions and ticks; because the engine is deterministic for a given seed,
// this is enough to rebuild every frame.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Event is one entry of a recording. An event with ActionNone is a run of
// Ticks consecutive ticks; any other action is a single command.
type Event struct {
	Action core.Action
	Ticks  int
}

// IsTick reports whether the event is a tick run.
func (e Event) IsTick() bool {
	return e.Action == core.ActionNone
}

func (e Event) String() string {
	if e.IsTick() {
		return fmt.Sprintf("tick x%d", e.Ticks)
	}
	return e.Action.String()
}

// Recording is a complete, replayable session.
type Recording struct {
	ID         int64
	Seed       int64
	Width      int
	Height     int
	Events     []Event
	FinalScore int
	HighScore  int
	FinalHash  uint64 // Zero when unknown
	CreatedAt  time.Time
}

// TotalTicks counts the ticks across all tick runs.
func (r Recording) TotalTicks() int {
	n := 0
	for _, e := range r.Events {
		if e.IsTick() {
			n += e.Ticks
		}
	}
	return n
}

// Validate checks the recording is structurally sound.
func (r Recording) Validate() error {
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("replay: invalid board %dx%d", r.Width, r.Height)
	}
	for i, e := range r.Events {
		if e.IsTick() && e.Ticks < 1 {
			return fmt.Errorf("replay: event %d: tick run of %d", i, e.Ticks)
		}
		if !e.IsTick() && e.Ticks != 0 {
			return fmt.Errorf("replay: event %d: action %s carries ticks", i, e.Action)
		}
	}
	return nil
}

// Recorder accumulates events for a single recording.
// It is not safe for concurrent use; session.Host serialises access.
type Recorder struct {
	rec Recording
}

// NewRecorder starts an empty recording for a board and seed.
func NewRecorder(seed int64, width, height int) *Recorder {
	return &Recorder{rec: Recording{Seed: seed, Width: width, Height: height}}
}

// Action appends a command. ActionNone is ignored.
func (r *Recorder) Action(a core.Action) {
	if a == core.ActionNone {
		return
	}
	r.rec.Events = append(r.rec.Events, Event{Action: a})
}

// Tick appends one tick, extending the trailing tick run if there is one.
func (r *Recorder) Tick() {
	if n := len(r.rec.Events); n > 0 && r.rec.Events[n-1].IsTick() {
		r.rec.Events[n-1].Ticks++
		return
	}
	r.rec.Events = append(r.rec.Events, Event{Ticks: 1})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.rec.Events)
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Events = append([]Event(nil), r.rec.Events...)
	return out
}
