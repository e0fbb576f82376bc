// Package snake implements the snake simulation engine: movement, collision,
// growth, food placement, scoring and the game lifecycle. It has no knowledge
// of keys, timers or rendering surfaces beyond core.Screen.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	// InitialLength is the number of segments of a freshly built snake.
	InitialLength = 3

	// MinCells is the smallest board that fits the initial snake plus food.
	MinCells = InitialLength + 1
)

// TickResult reports the outcome of one simulation step.
type TickResult int

const (
	Continue TickResult = iota
	Ate
	Collided
)

func (r TickResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	default:
		return "unknown"
	}
}

// Game is the complete simulation state of one game session.
// It is not safe for concurrent use; see session.Host.
type Game struct {
	grid     core.Grid
	rng      Rand
	session  *Session
	observer Observer

	snake     []core.Point // Head at index 0
	food      core.Point
	hasFood   bool
	direction Direction
	queue     DirectionQueue
	scores    ScoreTracker
	state     State
	tick      uint64
	won       bool
	newHigh   bool
}

// Option configures a Game at construction.
type Option func(*Game)

// WithSession shares a Session (and its high score) with the game.
func WithSession(s *Session) Option {
	return func(g *Game) {
		g.session = s
	}
}

// WithObserver registers a lifecycle transition callback.
func WithObserver(fn Observer) Option {
	return func(g *Game) {
		g.observer = fn
	}
}

// Initialize builds a Ready game on a width x height board.
// A nil rng falls back to a time-seeded source.
func Initialize(width, height int, rng Rand, opts ...Option) (*Game, error) {
	switch {
	case width < 1:
		return nil, &ConfigError{Width: width, Height: height, Reason: "width must be at least 1"}
	case height < 1:
		return nil, &ConfigError{Width: width, Height: height, Reason: "height must be at least 1"}
	case width*height < MinCells:
		return nil, &ConfigError{Width: width, Height: height, Reason: "board too small for the initial snake"}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //#nosec G404 -- gameplay randomness
	}

	g := &Game{
		grid: core.Grid{W: width, H: height},
		rng:  rng,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.session == nil {
		g.session = &Session{}
	}

	g.reset()
	return g, nil
}

// reset rebuilds the simulation state in place. Lifecycle is left to the caller.
func (g *Game) reset() {
	g.snake = initialBody(g.grid)
	g.direction = DirRight
	g.queue.Reset(DirNone)
	g.scores = NewScoreTracker(g.session)
	g.tick = 0
	g.won = false
	g.newHigh = false
	g.food, g.hasFood = Spawn(g.grid.W, g.grid.H, OccupancyOf(g.snake), g.rng)
}

// initialBody lays out a 3-segment snake around the board center with the
// head rightmost. Boards narrower than 3 get a bent body (width 2) or a
// vertical one (width 1). On those the head already touches the right wall,
// so the first tick collides unless the player turns before it.
func initialBody(grid core.Grid) []core.Point {
	switch {
	case grid.W >= InitialLength:
		c := grid.Center()
		x := max(c.X, InitialLength-1)
		return []core.Point{
			core.Pt(x, c.Y),
			core.Pt(x-1, c.Y),
			core.Pt(x-2, c.Y),
		}
	case grid.W == 2:
		y := max(grid.H/2, 1)
		return []core.Point{
			core.Pt(1, y),
			core.Pt(0, y),
			core.Pt(0, y-1),
		}
	default:
		y := max(grid.H/2, InitialLength-1)
		return []core.Point{
			core.Pt(0, y),
			core.Pt(0, y-1),
			core.Pt(0, y-2),
		}
	}
}

// Tick advances the simulation by one step. Ticks outside Running leave the
// game untouched and report Continue.
func (g *Game) Tick() TickResult {
	if g.state != StateRunning {
		return Continue
	}
	g.tick++

	// Resolve buffered direction (drops instant reversal)
	g.direction = g.queue.Resolve(g.direction)

	newHead := g.snake[0].Add(g.direction.Delta())

	// Wall check precedes self check; the body stays as it was.
	if IsOutOfBounds(newHead, g.grid.W, g.grid.H) {
		g.endGame(false)
		return Collided
	}
	if IsSelfCollision(newHead, g.snake) {
		g.endGame(false)
		return Collided
	}

	next := make([]core.Point, 0, len(g.snake)+1)
	next = append(next, newHead)

	if g.hasFood && newHead == g.food {
		next = append(next, g.snake...)
		g.snake = next
		g.scores.OnFoodEaten()

		if len(next) >= g.grid.Area() {
			// Board full: nowhere left to place food.
			g.hasFood = false
			g.food = core.Pt(-1, -1)
			g.endGame(true)
			return Ate
		}
		g.food, g.hasFood = Spawn(g.grid.W, g.grid.H, OccupancyOf(next), g.rng)
		return Ate
	}

	next = append(next, g.snake[:len(g.snake)-1]...)
	g.snake = next
	return Continue
}

// State returns the lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Direction returns the current movement direction.
func (g *Game) Direction() Direction {
	return g.direction
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.scores.Score()
}

// HighScore returns the session best score.
func (g *Game) HighScore() int {
	return g.scores.HighScore()
}

// Session returns the session the game reports to.
func (g *Game) Session() *Session {
	return g.session
}

// Grid returns the board dimensions.
func (g *Game) Grid() core.Grid {
	return g.grid
}
