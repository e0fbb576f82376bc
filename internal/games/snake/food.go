package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Rand is the random source used for food placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Occupancy is a set of board cells.
type Occupancy map[core.Point]struct{}

// OccupancyOf builds the set of cells covered by body.
func OccupancyOf(body []core.Point) Occupancy {
	occ := make(Occupancy, len(body))
	for _, p := range body {
		occ[p] = struct{}{}
	}
	return occ
}

// Has reports whether p is occupied.
func (o Occupancy) Has(p core.Point) bool {
	_, ok := o[p]
	return ok
}

// Spawn draws uniformly random cells from [0,width) x [0,height) until one is
// not occupied and returns it. ok is false when no free cell exists; callers
// are expected to check for a full board before calling.
func Spawn(width, height int, occupied Occupancy, rng Rand) (p core.Point, ok bool) {
	if width <= 0 || height <= 0 {
		return core.Pt(-1, -1), false
	}

	inside := 0
	for c := range occupied {
		if !IsOutOfBounds(c, width, height) {
			inside++
		}
	}
	if inside >= width*height {
		return core.Pt(-1, -1), false
	}

	for {
		p = core.Pt(rng.Intn(width), rng.Intn(height))
		if !occupied.Has(p) {
			return p, true
		}
	}
}
