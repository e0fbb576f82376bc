// Package core provides fundamental types and utilities shared by the engine
// and the platform layer. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

import "fmt"

// Point is a cell coordinate on the board. Origin is the top-left cell.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid describes the playing field dimensions.
type Grid struct {
	W, H int
}

// Contains returns true if p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Area returns the number of cells in the grid.
func (g Grid) Area() int {
	if g.W <= 0 || g.H <= 0 {
		return 0
	}
	return g.W * g.H
}

// Center returns the center cell of the grid (rounded down).
func (g Grid) Center() Point {
	return Point{X: g.W / 2, Y: g.H / 2}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
