package models

import "time"

// PlayerState is the persisted slice of the player entity.
type PlayerState struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Health int `json:"health"`
}

// EntityState is the persisted slice of a non-player entity. AI names the
// enemy's strategy so a restored enemy behaves like the saved one; it is
// empty for collectables.
type EntityState struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
	X    int        `json:"x"`
	Y    int        `json:"y"`
	AI   string     `json:"ai,omitempty"`
}

// GameSave is a full snapshot of one game, the unit stored by the
// persistence layer.
type GameSave struct {
	ID               string        `json:"id"`
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	Player           PlayerState   `json:"player"`
	Entities         []EntityState `json:"entities"`
	CollectablesLeft int           `json:"collectables_left"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
