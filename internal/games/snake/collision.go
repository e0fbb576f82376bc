package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// IsOutOfBounds reports whether p lies outside a width x height board.
func IsOutOfBounds(p core.Point, width, height int) bool {
	return p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height
}

// IsSelfCollision reports whether newHead lands on any body segment.
// body must be the full current body, tail included: moving into the cell
// the tail is about to vacate counts as a collision.
func IsSelfCollision(newHead core.Point, body []core.Point) bool {
	for _, seg := range body {
		if seg == newHead {
			return true
		}
	}
	return false
}
