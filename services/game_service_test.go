package services

import (
	"fmt"
	"testing"

	"gridquest/server/models"
	"gridquest/server/persistence"
)

// fakeView records every collaborator call.
type fakeView struct {
	inits     int
	updates   int
	gameOvers int

	lastPlayerPos models.Point
	lastRemaining int
	lastEntities  []models.EntityPos
}

func (v *fakeView) InitializeView(playerPos models.Point, entities []models.EntityPos) {
	v.inits++
	v.lastPlayerPos = playerPos
	v.lastEntities = entities
}

func (v *fakeView) UpdateWorldMap(playerPos models.Point, remaining int, entities []models.EntityPos) {
	v.updates++
	v.lastPlayerPos = playerPos
	v.lastRemaining = remaining
	v.lastEntities = entities
}

func (v *fakeView) GameOver() {
	v.gameOvers++
}

// memStore is an in-memory persistence.Storage.
type memStore struct {
	saves   map[string]*models.GameSave
	deletes int
}

func newMemStore() *memStore {
	return &memStore{saves: map[string]*models.GameSave{}}
}

func (s *memStore) SaveGame(save *models.GameSave) error {
	s.saves[save.ID] = save
	return nil
}

func (s *memStore) LoadGame(id string) (*models.GameSave, error) {
	save, ok := s.saves[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, persistence.ErrNotFound)
	}
	return save, nil
}

func (s *memStore) DeleteGame(id string) error {
	delete(s.saves, id)
	s.deletes++
	return nil
}

func (s *memStore) Close() error { return nil }

func TestAttachViewSendsInitialState(t *testing.T) {
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 2, Y: 2, Health: 3}, []models.EntityState{
		{ID: "c1", Kind: models.KindCollectable, X: 0, Y: 0},
	})
	game := NewGameService("g1", world, nil)

	view := &fakeView{}
	game.AttachView(view)

	if view.inits != 1 {
		t.Fatalf("expected 1 InitializeView call, got %d", view.inits)
	}
	if view.lastPlayerPos != (models.Point{X: 2, Y: 2}) {
		t.Fatalf("init player pos %v, want (2,2)", view.lastPlayerPos)
	}
	if len(view.lastEntities) != 1 {
		t.Fatalf("expected 1 entity in init, got %d", len(view.lastEntities))
	}
}

func TestHandleMoveNotifiesViewAndCheckpoints(t *testing.T) {
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 2, Y: 2, Health: 3}, []models.EntityState{
		{ID: "c1", Kind: models.KindCollectable, X: 0, Y: 0},
	})
	store := newMemStore()
	game := NewGameService("g1", world, store)
	view := &fakeView{}
	game.AttachView(view)

	out, result := game.HandleMove(models.North)
	if !out.Moved {
		t.Fatal("expected the step to be applied")
	}
	if result != GameActive {
		t.Fatalf("expected GameActive, got %v", result)
	}
	if view.updates != 1 {
		t.Fatalf("expected 1 UpdateWorldMap call, got %d", view.updates)
	}
	if view.gameOvers != 0 {
		t.Fatalf("unexpected GameOver call")
	}
	if view.lastRemaining != 1 {
		t.Fatalf("expected 1 collectable remaining, got %d", view.lastRemaining)
	}

	save, ok := store.saves["g1"]
	if !ok {
		t.Fatal("expected a checkpoint save after the move")
	}
	if save.Player.Y != 1 {
		t.Fatalf("checkpoint player Y = %d, want 1", save.Player.Y)
	}
}

func TestLastCollectableWinsTheGame(t *testing.T) {
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 2, Y: 2, Health: 3}, []models.EntityState{
		{ID: "c1", Kind: models.KindCollectable, X: 2, Y: 1},
	})
	store := newMemStore()
	store.saves["g1"] = &models.GameSave{ID: "g1"}
	game := NewGameService("g1", world, store)
	view := &fakeView{}
	game.AttachView(view)

	out, result := game.HandleMove(models.North)
	if !out.Collected {
		t.Fatal("expected the collectable to be consumed")
	}
	if result != GameWon {
		t.Fatalf("expected GameWon, got %v", result)
	}
	if view.gameOvers != 1 {
		t.Fatalf("expected 1 GameOver call, got %d", view.gameOvers)
	}
	if _, ok := store.saves["g1"]; ok {
		t.Fatal("finished game's save should be deleted")
	}
}

func TestEnemyContactDrainsHealth(t *testing.T) {
	// Player pinned in the corner with a focus enemy right below: every
	// turn the enemy tries the player's tile and deals one contact, and
	// the player's step north is off the board.
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 0, Y: 0, Health: 2}, []models.EntityState{
		{ID: "e1", Kind: models.KindEnemy, X: 0, Y: 1, AI: AIFocus},
	})
	game := NewGameService("g1", world, nil)
	view := &fakeView{}
	game.AttachView(view)

	out, result := game.HandleMove(models.North)
	if out.EnemyContacts != 1 {
		t.Fatalf("expected 1 contact, got %d", out.EnemyContacts)
	}
	if result != GameActive {
		t.Fatalf("expected GameActive after first contact, got %v", result)
	}
	if world.Player().Health() != 1 {
		t.Fatalf("player health %d, want 1", world.Player().Health())
	}

	_, result = game.HandleMove(models.South)
	if result != GameLost {
		t.Fatalf("expected GameLost, got %v", result)
	}
	if view.gameOvers != 1 {
		t.Fatalf("expected 1 GameOver call, got %d", view.gameOvers)
	}
}

func TestMovesAfterGameOverAreIgnored(t *testing.T) {
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 2, Y: 2, Health: 3}, []models.EntityState{
		{ID: "c1", Kind: models.KindCollectable, X: 2, Y: 1},
	})
	game := NewGameService("g1", world, nil)
	view := &fakeView{}
	game.AttachView(view)

	if _, result := game.HandleMove(models.North); result != GameWon {
		t.Fatalf("expected GameWon, got %v", result)
	}
	posAfterWin := world.PlayerPos()

	out, result := game.HandleMove(models.South)
	if result != GameWon {
		t.Fatalf("expected result to stay GameWon, got %v", result)
	}
	if out.Moved {
		t.Fatal("no move should be processed after the game ends")
	}
	if world.PlayerPos() != posAfterWin {
		t.Fatalf("player moved after game over: %v", world.PlayerPos())
	}
	if view.updates != 1 {
		t.Fatalf("expected no further updates, got %d", view.updates)
	}
}
