package services

import "gridquest/server/models"

// CheckCollisions reports whether candidate is an illegal movement
// destination on the given board: outside [0,width)×[0,height) or already
// occupied. The board is the pre-move state; the mover's own slot has not
// been vacated when this runs.
func CheckCollisions(board models.Board, candidate models.Point, width, height int) bool {
	if candidate.X < 0 || candidate.X >= width || candidate.Y < 0 || candidate.Y >= height {
		return true
	}
	return board.At(candidate) != nil
}
