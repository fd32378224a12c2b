package models

// Board maps every coordinate of the playing rectangle to its occupant.
// Every in-bounds coordinate has an entry; a nil value means the slot is
// empty. Out-of-bounds coordinates have no entry at all.
type Board map[Point]Entity

// NewBoard builds an empty width×height board.
func NewBoard(width, height int) Board {
	b := make(Board, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			b[Point{X: x, Y: y}] = nil
		}
	}
	return b
}

// At returns the occupant of p, or nil when the slot is empty or out of
// bounds.
func (b Board) At(p Point) Entity {
	return b[p]
}

// Contains reports whether p is a valid board coordinate.
func (b Board) Contains(p Point) bool {
	_, ok := b[p]
	return ok
}

// Clone returns a shallow copy of the board mapping. Callers get a view
// they can iterate without racing a later mutation of the original.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for p, e := range b {
		out[p] = e
	}
	return out
}
