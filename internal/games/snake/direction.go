package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirNone Direction = iota // pre-start sentinel
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit step for the direction. DirNone has no step.
func (d Direction) Delta() core.Point {
	switch d {
	case DirUp:
		return core.Pt(0, -1)
	case DirDown:
		return core.Pt(0, 1)
	case DirLeft:
		return core.Pt(-1, 0)
	case DirRight:
		return core.Pt(1, 0)
	default:
		return core.Pt(0, 0)
	}
}

// Opposite returns the reverse direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirNone:
		return "none"
	default:
		return "unknown"
	}
}

// DirectionFromAction maps a directional action to a Direction.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirNone, false
}

// isOpposite checks if two directions are exact opposites.
func isOpposite(d1, d2 Direction) bool {
	return d1 != DirNone && d1.Opposite() == d2
}

// DirectionQueue buffers the most recent direction request until the next tick.
// Requests are last-write-wins; reversal is checked only when resolving.
type DirectionQueue struct {
	pending Direction
}

// Request stores d as the pending direction. DirNone is ignored.
func (q *DirectionQueue) Request(d Direction) {
	if d == DirNone {
		return
	}
	q.pending = d
}

// Pending returns the buffered direction.
func (q *DirectionQueue) Pending() Direction {
	return q.pending
}

// Resolve returns the direction to move in this tick. A pending request that
// exactly reverses current is dropped and current is kept.
func (q *DirectionQueue) Resolve(current Direction) Direction {
	next := q.pending
	if next == DirNone || isOpposite(next, current) {
		next = current
	}
	q.pending = next
	return next
}

// Reset replaces the pending direction unconditionally.
func (q *DirectionQueue) Reset(d Direction) {
	q.pending = d
}
