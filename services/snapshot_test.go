package services

import (
	"math/rand"
	"testing"

	"gridquest/server/models"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	world, err := NewWorldMap(7, 7, 3, 4, NewRandomSpawn(rng), rng)
	if err != nil {
		t.Fatalf("NewWorldMap: %v", err)
	}
	world.MovePlayer(models.East)
	world.Player().SetHealth(2)

	save := world.Snapshot("game-1")
	if save.ID != "game-1" {
		t.Fatalf("save ID = %q, want game-1", save.ID)
	}
	if save.Width != 7 || save.Height != 7 {
		t.Fatalf("save dims %dx%d, want 7x7", save.Width, save.Height)
	}
	if save.Player.Health != 2 {
		t.Fatalf("save player health %d, want 2", save.Player.Health)
	}

	restored, err := RestoreWorldMap(save, NewRandomSpawn(rng), rng)
	if err != nil {
		t.Fatalf("RestoreWorldMap: %v", err)
	}

	if restored.PlayerPos() != world.PlayerPos() {
		t.Fatalf("restored player at %v, want %v", restored.PlayerPos(), world.PlayerPos())
	}
	if restored.Player().Health() != 2 {
		t.Fatalf("restored player health %d, want 2", restored.Player().Health())
	}
	if restored.CollectablesRemaining() != world.CollectablesRemaining() {
		t.Fatalf("restored %d collectables, want %d",
			restored.CollectablesRemaining(), world.CollectablesRemaining())
	}

	want := map[models.Point]models.EntityKind{}
	for _, ep := range world.EntitiesPos() {
		want[ep.Pos] = ep.Kind
	}
	got := map[models.Point]models.EntityKind{}
	for _, ep := range restored.EntitiesPos() {
		got[ep.Pos] = ep.Kind
	}
	if len(got) != len(want) {
		t.Fatalf("restored %d entities, want %d", len(got), len(want))
	}
	for p, kind := range want {
		if got[p] != kind {
			t.Fatalf("restored slot %v holds %q, want %q", p, got[p], kind)
		}
	}
}

func TestSnapshotKeepsEnemyAI(t *testing.T) {
	world := restoreWorld(t, 5, 5, models.PlayerState{X: 2, Y: 2, Health: 3}, []models.EntityState{
		{ID: "e1", Kind: models.KindEnemy, X: 0, Y: 0, AI: AIFocus},
		{ID: "e2", Kind: models.KindEnemy, X: 4, Y: 4, AI: AIRandom},
	})

	save := world.Snapshot("game-2")
	ais := map[string]string{}
	for _, state := range save.Entities {
		ais[state.ID] = state.AI
	}
	if ais["e1"] != AIFocus {
		t.Fatalf("e1 saved with AI %q, want %q", ais["e1"], AIFocus)
	}
	if ais["e2"] != AIRandom {
		t.Fatalf("e2 saved with AI %q, want %q", ais["e2"], AIRandom)
	}
}

func TestRestoreRejectsCorruptSaves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spawn := NewRandomSpawn(rng)

	tests := []struct {
		name string
		save *models.GameSave
	}{
		{"bad dimensions", &models.GameSave{Width: 0, Height: 5}},
		{"player out of bounds", &models.GameSave{
			Width: 3, Height: 3,
			Player: models.PlayerState{X: 5, Y: 5, Health: 3},
		}},
		{"entity out of bounds", &models.GameSave{
			Width: 3, Height: 3,
			Player: models.PlayerState{X: 1, Y: 1, Health: 3},
			Entities: []models.EntityState{
				{ID: "e", Kind: models.KindEnemy, X: 9, Y: 9},
			},
		}},
		{"double occupancy", &models.GameSave{
			Width: 3, Height: 3,
			Player: models.PlayerState{X: 1, Y: 1, Health: 3},
			Entities: []models.EntityState{
				{ID: "a", Kind: models.KindCollectable, X: 0, Y: 0},
				{ID: "b", Kind: models.KindEnemy, X: 0, Y: 0},
			},
		}},
		{"unknown kind", &models.GameSave{
			Width: 3, Height: 3,
			Player: models.PlayerState{X: 1, Y: 1, Health: 3},
			Entities: []models.EntityState{
				{ID: "x", Kind: "ghost", X: 0, Y: 0},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RestoreWorldMap(tt.save, spawn, rng); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
