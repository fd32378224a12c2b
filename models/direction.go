package models

import "fmt"

// Direction is one of the four unit moves a client may request.
type Direction uint8

const (
	North Direction = iota
	South
	West
	East
)

// Directions lists every legal movement direction in a fixed order.
// AI tie-breaking and random stepping both rely on this order being stable.
var Directions = [...]Direction{North, South, West, East}

// Delta returns the unit offset for one step in this direction.
// North decreases Y, South increases Y.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	case East:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// ParseDirection maps a wire direction string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north":
		return North, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	case "east":
		return East, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", s)
	}
}
