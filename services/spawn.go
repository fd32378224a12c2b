package services

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"gridquest/server/models"
)

// SpawnStrategy decides where the initial entities of a game are placed.
// Implementations must never hand out the player's starting coordinate
// (the center of the board) and must return pairwise-distinct points.
//
// Points come back as ordered slices: the engine assigns roles (enemy vs
// collectable) by position in the slice, so the order has to be stable
// rather than whatever a hash set happens to iterate.
type SpawnStrategy interface {
	// CheckCapacity reports whether requested points fit on a board with
	// totalCells cells, one of which the player already occupies.
	CheckCapacity(totalCells, requested int) bool

	// SpawnPoints returns exactly count distinct points inside the board,
	// excluding the player's start.
	SpawnPoints(width, height, count int) []models.Point

	// MergeSpawnPoints combines two independently generated point slices
	// into one slice of len(first)+len(second) pairwise-distinct points,
	// resampling any member of second that collides.
	MergeSpawnPoints(width, height int, first, second []models.Point) []models.Point
}

// RandomSpawn places entities uniformly at random. The rand source is
// injected so placement is reproducible under a fixed seed.
type RandomSpawn struct {
	rng *rand.Rand
}

func NewRandomSpawn(rng *rand.Rand) *RandomSpawn {
	return &RandomSpawn{rng: rng}
}

func (s *RandomSpawn) CheckCapacity(totalCells, requested int) bool {
	return requested >= 0 && requested <= totalCells-1
}

func (s *RandomSpawn) SpawnPoints(width, height, count int) []models.Point {
	center := models.Point{X: width / 2, Y: height / 2}
	seen := mapset.New[models.Point]()
	points := make([]models.Point, 0, count)
	for len(points) < count {
		p := s.randomPoint(width, height)
		if p == center || seen.Has(p) {
			continue
		}
		seen.Put(p)
		points = append(points, p)
	}
	return points
}

func (s *RandomSpawn) MergeSpawnPoints(width, height int, first, second []models.Point) []models.Point {
	center := models.Point{X: width / 2, Y: height / 2}
	seen := mapset.New[models.Point]()
	merged := make([]models.Point, 0, len(first)+len(second))
	for _, p := range first {
		seen.Put(p)
		merged = append(merged, p)
	}
	for _, p := range second {
		for p == center || seen.Has(p) {
			p = s.randomPoint(width, height)
		}
		seen.Put(p)
		merged = append(merged, p)
	}
	return merged
}

func (s *RandomSpawn) randomPoint(width, height int) models.Point {
	return models.Point{X: s.rng.Intn(width), Y: s.rng.Intn(height)}
}
