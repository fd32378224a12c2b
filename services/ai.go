package services

import (
	"math/rand"

	"gridquest/server/models"
)

// AI strategy names used when persisting and restoring enemies.
const (
	AIRandom = "random"
	AIFocus  = "focus"
)

// RandomAI steps in a uniformly random direction, ignoring the player.
type RandomAI struct {
	rng *rand.Rand
}

func NewRandomAI(rng *rand.Rand) *RandomAI {
	return &RandomAI{rng: rng}
}

func (a *RandomAI) NextMove(_ models.Board, _, self models.Point) models.Point {
	d := models.Directions[a.rng.Intn(len(models.Directions))]
	return models.Sum(self, d.Delta())
}

// FocusAI steps toward the player, picking the adjacent point with the
// smallest Manhattan distance to the player's position. Ties resolve to the
// earliest direction in models.Directions, so the choice is deterministic.
type FocusAI struct{}

func NewFocusAI() *FocusAI {
	return &FocusAI{}
}

func (a *FocusAI) NextMove(_ models.Board, playerPos, self models.Point) models.Point {
	best := models.Sum(self, models.Directions[0].Delta())
	bestDist := best.Manhattan(playerPos)
	for _, d := range models.Directions[1:] {
		candidate := models.Sum(self, d.Delta())
		if dist := candidate.Manhattan(playerPos); dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}

// aiName maps a strategy instance back to its persisted name.
func aiName(ai models.EnemyAI) string {
	switch ai.(type) {
	case *FocusAI:
		return AIFocus
	default:
		return AIRandom
	}
}

// aiByName builds a strategy from its persisted name. Unknown names fall
// back to the random strategy rather than failing a restore.
func aiByName(name string, rng *rand.Rand) models.EnemyAI {
	if name == AIFocus {
		return NewFocusAI()
	}
	return NewRandomAI(rng)
}
