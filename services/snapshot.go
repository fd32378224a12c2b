package services

import (
	"fmt"
	"math/rand"
	"time"

	"gridquest/server/models"
)

// Snapshot captures the full world state for the persistence layer.
func (m *WorldMap) Snapshot(id string) *models.GameSave {
	playerPos := m.player.Position()
	save := &models.GameSave{
		ID:               id,
		Width:            m.width,
		Height:           m.height,
		Player:           models.PlayerState{X: playerPos.X, Y: playerPos.Y, Health: m.player.Health()},
		CollectablesLeft: m.numCollectables,
		UpdatedAt:        time.Now().UTC(),
	}
	for p, e := range m.board {
		if e == nil || p == playerPos {
			continue
		}
		state := models.EntityState{ID: e.ID(), Kind: e.Kind(), X: p.X, Y: p.Y}
		if enemy, ok := e.(*models.Enemy); ok {
			state.AI = aiName(enemy.AI())
		}
		save.Entities = append(save.Entities, state)
	}
	return save
}

// RestoreWorldMap rebuilds a world from a saved snapshot. Enemies get back
// the AI strategy they were saved with.
func RestoreWorldMap(save *models.GameSave, spawn SpawnStrategy, rng *rand.Rand) (*WorldMap, error) {
	if save.Width <= 0 || save.Height <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", save.Width, save.Height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &WorldMap{
		width:  save.Width,
		height: save.Height,
		board:  models.NewBoard(save.Width, save.Height),
		spawn:  spawn,
		rng:    rng,
	}

	playerPos := models.Point{X: save.Player.X, Y: save.Player.Y}
	if !m.board.Contains(playerPos) {
		return nil, fmt.Errorf("player position %v outside %dx%d board", playerPos, save.Width, save.Height)
	}
	m.player = models.NewPlayer(save.ID, playerPos, save.Player.Health)
	m.board[playerPos] = m.player

	for _, state := range save.Entities {
		p := models.Point{X: state.X, Y: state.Y}
		if !m.board.Contains(p) {
			return nil, fmt.Errorf("entity %s position %v outside %dx%d board", state.ID, p, save.Width, save.Height)
		}
		if m.board.At(p) != nil {
			return nil, fmt.Errorf("entity %s position %v already occupied", state.ID, p)
		}
		switch state.Kind {
		case models.KindEnemy:
			m.board[p] = models.NewEnemy(state.ID, p, enemyStartHealth, aiByName(state.AI, rng))
			m.numEnemies++
		case models.KindCollectable:
			m.board[p] = models.NewCollectable(state.ID, p)
			m.numCollectables++
		default:
			return nil, fmt.Errorf("entity %s has unknown kind %q", state.ID, state.Kind)
		}
	}
	return m, nil
}
