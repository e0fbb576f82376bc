// Package session hosts a snake game for a front end. A Host owns the engine,
// the session high score and the replay recorder, serialises every command
// and tick behind one mutex, and publishes lifecycle events on a channel.
package session

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

const defaultEventBuffer = 64

// Host wraps a snake.Game for concurrent use by a scheduler and an input source.
type Host struct {
	mu       sync.Mutex
	game     *snake.Game
	session  snake.Session
	seed     int64
	logger   *log.Logger
	recorder *replay.Recorder
	pending  []Event // Transitions raised by the current command

	record      bool
	eventBuffer int
	events      chan Event
	done        chan struct{}
	doneOnce    sync.Once
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithoutRecording disables the replay recorder.
func WithoutRecording() Option {
	return func(h *Host) {
		h.record = false
	}
}

// WithEventBuffer sets how many events are buffered before the oldest are dropped.
func WithEventBuffer(n int) Option {
	return func(h *Host) {
		h.eventBuffer = n
	}
}

// New builds a Ready game from cfg. A zero seed is replaced by the clock so
// the recording still captures the seed actually used.
func New(cfg core.RuntimeConfig, opts ...Option) (*Host, error) {
	h := &Host{
		seed:        cfg.Seed,
		logger:      log.New(io.Discard),
		record:      true,
		eventBuffer: defaultEventBuffer,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.eventBuffer < 1 {
		h.eventBuffer = defaultEventBuffer
	}
	h.events = make(chan Event, h.eventBuffer)

	if h.seed == 0 {
		h.seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(h.seed)) //#nosec G404 -- gameplay randomness, must be reproducible
	game, err := snake.Initialize(cfg.GridW, cfg.GridH, rng,
		snake.WithSession(&h.session),
		snake.WithObserver(h.onTransition),
	)
	if err != nil {
		return nil, err
	}
	h.game = game

	if h.record {
		h.recorder = replay.NewRecorder(h.seed, cfg.GridW, cfg.GridH)
	}

	h.logger.Info("game ready", "width", cfg.GridW, "height", cfg.GridH, "seed", h.seed)
	return h, nil
}

// Dispatch applies one input action. Direction changes are only accepted
// while Running; Start, Pause and Restart are passed through and the engine
// ignores them where they do not apply. Quit is the front end's business.
// It reports whether the action reached the engine.
func (h *Host) Dispatch(a core.Action) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case a == core.ActionNone, a == core.ActionQuit:
		return false
	case a.IsDirectional() && h.game.State() != snake.StateRunning:
		return false
	}

	if !h.game.Apply(a) {
		return false
	}
	if h.recorder != nil {
		h.recorder.Action(a)
	}
	h.logger.Debug("action", "action", a, "state", h.game.State())
	h.flush()
	return true
}

// Tick advances the game by one step.
func (h *Host) Tick() snake.TickResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	res := h.game.Tick()
	if h.recorder != nil {
		h.recorder.Tick()
	}

	if res == snake.Ate {
		snap := h.game.Snapshot()
		h.publish(FoodEatenEvent{Score: snap.Score, Length: snap.Len()})
		h.logger.Debug("food eaten", "score", snap.Score, "length", snap.Len())
	}
	h.flush()
	return res
}

// Snapshot returns a copy of the current game.
func (h *Host) Snapshot() snake.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game.Snapshot()
}

// State returns the current lifecycle state.
func (h *Host) State() snake.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game.State()
}

// Render draws the current game into dst.
func (h *Host) Render(dst *core.Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.game.Render(dst)
}

// Seed returns the RNG seed in use.
func (h *Host) Seed() int64 {
	return h.seed
}

// Recording returns everything recorded so far, stamped with the current
// final state. ok is false when recording is disabled.
func (h *Host) Recording() (rec replay.Recording, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recorder == nil {
		return replay.Recording{}, false
	}

	snap := h.game.Snapshot()
	rec = h.recorder.Recording()
	rec.FinalScore = snap.Score
	rec.HighScore = snap.HighScore
	rec.FinalHash = snap.Hash()
	return rec, true
}

// Events returns the channel lifecycle events are published on.
func (h *Host) Events() <-chan Event {
	return h.events
}

// Done returns a channel that closes when the host is closed.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Close stops event delivery. Safe to call multiple times.
func (h *Host) Close() {
	h.doneOnce.Do(func() {
		close(h.done)
		h.logger.Info("session closed", "high_score", h.session.HighScore)
	})
}

// onTransition runs inside engine calls, so the lock is already held.
func (h *Host) onTransition(from, to snake.State) {
	h.logger.Info("state changed", "from", from, "to", to)
	h.pending = append(h.pending, StateChangedEvent{From: from, To: to})

	if to == snake.StateGameOver {
		snap := h.game.Snapshot()
		h.logger.Info("game over", "score", snap.Score, "high_score", snap.HighScore, "won", snap.Won, "new_high", snap.NewHigh, "ticks", snap.Tick)
		h.pending = append(h.pending, GameOverEvent{Score: snap.Score, HighScore: snap.HighScore, Won: snap.Won, NewHigh: snap.NewHigh})
	}
}

func (h *Host) flush() {
	for _, evt := range h.pending {
		h.publish(evt)
	}
	h.pending = h.pending[:0]
}

// publish never blocks. When the buffer is full the oldest event is dropped.
func (h *Host) publish(evt Event) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- evt:
	default:
		select {
		case <-h.events:
		default:
		}
		select {
		case h.events <- evt:
		default:
		}
	}
}
