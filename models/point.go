package models

import "fmt"

// Point is a 2D integer coordinate on the board.
// X increases to the right, Y increases downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sum returns the componentwise sum of two points.
func Sum(a, b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Add returns a new point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another point.
func (p Point) Manhattan(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
