package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"gridquest/server/models"
)

const (
	playerStartHealth = 3
	enemyStartHealth  = 1
)

// ErrBoardCapacity is returned when the requested entity count cannot fit
// on the board alongside the player.
var ErrBoardCapacity = errors.New("requested entities exceed board capacity")

// MoveOutcome describes what one turn actually did.
type MoveOutcome struct {
	// Moved is true when the player's step was applied, false when the
	// collision policy blocked it. A blocked step is a normal outcome,
	// not an error.
	Moved bool
	// Collected is true when the player stepped onto a collectable,
	// consuming it.
	Collected bool
	// EnemyContacts counts enemies whose proposed step this turn landed
	// on the player's tile. The step itself is blocked; the rules layer
	// decides what contact costs.
	EnemyContacts int
}

// WorldMap owns the board and advances it one turn at a time. It is not
// safe for concurrent use; the session layer serializes access.
type WorldMap struct {
	width           int
	height          int
	numEnemies      int
	numCollectables int
	board           models.Board
	player          *models.Player
	spawn           SpawnStrategy
	rng             *rand.Rand
}

// NewWorldMap builds a width×height board, places the player at the center
// and spawns the requested enemies and collectables through the given
// strategy. It fails with ErrBoardCapacity when the strategy reports the
// requested count cannot fit.
func NewWorldMap(width, height, numEnemies, numCollectables int, spawn SpawnStrategy, rng *rand.Rand) (*WorldMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", width, height)
	}
	if numEnemies < 0 || numCollectables < 0 {
		return nil, fmt.Errorf("negative entity count (enemies=%d collectables=%d)", numEnemies, numCollectables)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	requested := numEnemies + numCollectables
	if !spawn.CheckCapacity(width*height, requested) {
		return nil, fmt.Errorf("%w: %d requested, %d cells free", ErrBoardCapacity, requested, width*height-1)
	}

	m := &WorldMap{
		width:           width,
		height:          height,
		numEnemies:      numEnemies,
		numCollectables: numCollectables,
		board:           models.NewBoard(width, height),
		spawn:           spawn,
		rng:             rng,
	}

	start := models.Point{X: width / 2, Y: height / 2}
	m.player = models.NewPlayer(uuid.NewString(), start, playerStartHealth)
	m.board[start] = m.player

	m.spawnEntities()
	return m, nil
}

// spawnEntities asks the strategy for enemy and collectable points
// independently, merges them into one conflict-free ordered slice, then
// assigns the first numEnemies points to enemies and the rest to
// collectables.
func (m *WorldMap) spawnEntities() {
	enemyPoints := m.spawn.SpawnPoints(m.width, m.height, m.numEnemies)
	collectPoints := m.spawn.SpawnPoints(m.width, m.height, m.numCollectables)
	all := m.spawn.MergeSpawnPoints(m.width, m.height, enemyPoints, collectPoints)

	for i, p := range all {
		if i < m.numEnemies {
			m.board[p] = models.NewEnemy(uuid.NewString(), p, enemyStartHealth, m.randomAI())
		} else {
			m.board[p] = models.NewCollectable(uuid.NewString(), p)
		}
	}
}

// randomAI picks uniformly between the two enemy strategies.
func (m *WorldMap) randomAI() models.EnemyAI {
	if m.rng.Intn(2) == 0 {
		return NewRandomAI(m.rng)
	}
	return NewFocusAI()
}

// MovePlayer advances the world one turn: every enemy takes its AI-directed
// step first, then the player's step in dir is validated and applied. A
// collectable on the player's destination is consumed before the collision
// check, so stepping onto it succeeds.
func (m *WorldMap) MovePlayer(dir models.Direction) MoveOutcome {
	out := MoveOutcome{EnemyContacts: m.moveEnemies()}

	next := models.Sum(m.player.Position(), dir.Delta())
	if occupant := m.board.At(next); occupant != nil && occupant.Kind() == models.KindCollectable {
		m.board[next] = nil
		m.numCollectables--
		out.Collected = true
	}

	if CheckCollisions(m.board, next, m.width, m.height) {
		return out
	}

	old := m.player.Position()
	m.board[old] = nil
	m.player.SetPosition(next)
	m.board[next] = m.player
	out.Moved = true
	return out
}

// moveEnemies gives every enemy one step. The enemy list is snapshotted
// before anyone moves, but relocations apply immediately, so an enemy
// processed later in the loop sees earlier enemies at their new positions.
func (m *WorldMap) moveEnemies() int {
	var snapshot []models.Point
	for p, e := range m.board {
		if e != nil && e.Kind() == models.KindEnemy {
			snapshot = append(snapshot, p)
		}
	}

	playerPos := m.player.Position()
	contacts := 0
	for _, p := range snapshot {
		occupant := m.board.At(p)
		if occupant == nil {
			// Nothing else may vacate an enemy's slot mid-turn; an
			// empty slot here means the bookkeeping is corrupt.
			panic(fmt.Sprintf("world map: enemy slot %v is empty", p))
		}
		enemy, ok := occupant.(*models.Enemy)
		if !ok {
			panic(fmt.Sprintf("world map: enemy slot %v holds %s", p, occupant.Kind()))
		}

		next := enemy.AI().NextMove(m.board, playerPos, p)
		if next == playerPos {
			contacts++
		}
		if CheckCollisions(m.board, next, m.width, m.height) {
			continue
		}
		m.board[p] = nil
		enemy.SetPosition(next)
		m.board[next] = enemy
	}
	return contacts
}

// Board returns a copy of the coordinate→occupant mapping. Mutating the
// copy does not affect the live board.
func (m *WorldMap) Board() models.Board {
	return m.board.Clone()
}

// PlayerPos returns the player's current coordinate.
func (m *WorldMap) PlayerPos() models.Point {
	return m.player.Position()
}

// Player returns the player entity. The rules layer reads and adjusts its
// health; position changes go through MovePlayer only.
func (m *WorldMap) Player() *models.Player {
	return m.player
}

// EntitiesPos lists every occupied slot except the player's own. The order
// is stable within a single call only.
func (m *WorldMap) EntitiesPos() []models.EntityPos {
	playerPos := m.player.Position()
	out := make([]models.EntityPos, 0, m.numEnemies+m.numCollectables)
	for p, e := range m.board {
		if e == nil || p == playerPos {
			continue
		}
		out = append(out, models.EntityPos{Pos: p, Kind: e.Kind()})
	}
	return out
}

// CollectablesRemaining reports how many collectables are still on the
// board.
func (m *WorldMap) CollectablesRemaining() int {
	return m.numCollectables
}

// Width returns the board width.
func (m *WorldMap) Width() int { return m.width }

// Height returns the board height.
func (m *WorldMap) Height() int { return m.height }
