package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// State is the game lifecycle state.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Observer is notified after every lifecycle transition.
type Observer func(from, to State)

// Start moves a Ready game to Running, facing right.
func (g *Game) Start() {
	if g.state != StateReady {
		return
	}
	g.direction = DirRight
	g.queue.Reset(DirRight)
	g.setState(StateRunning)
}

// Pause toggles between Running and Paused. Other states ignore it.
func (g *Game) Pause() {
	switch g.state {
	case StateRunning:
		g.setState(StatePaused)
	case StatePaused:
		g.setState(StateRunning)
	}
}

// SetDirection requests a direction for the next tick. Only honoured while
// Running.
func (g *Game) SetDirection(d Direction) {
	if g.state != StateRunning {
		return
	}
	g.queue.Request(d)
}

// Restart discards the current game and builds a fresh Ready one.
// The session high score is kept.
func (g *Game) Restart() {
	g.reset()
	g.setState(StateReady)
}

// Apply dispatches a semantic action to the matching command. Actions with no
// engine meaning (None, Quit) are ignored. It reports whether the action was
// recognised.
func (g *Game) Apply(a core.Action) bool {
	if d, ok := DirectionFromAction(a); ok {
		g.SetDirection(d)
		return true
	}

	switch a {
	case core.ActionStart:
		g.Start()
	case core.ActionPause:
		g.Pause()
	case core.ActionRestart:
		g.Restart()
	default:
		return false
	}
	return true
}

// endGame enters GameOver and reports the final score to the session.
func (g *Game) endGame(won bool) {
	g.won = won
	g.newHigh = g.scores.OnGameOver(g.scores.Score())
	g.setState(StateGameOver)
}

func (g *Game) setState(to State) {
	from := g.state
	g.state = to
	if from != to && g.observer != nil {
		g.observer(from, to)
	}
}
