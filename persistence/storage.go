package persistence

import (
	"errors"

	"gridquest/server/models"
)

// ErrNotFound is returned when no save exists for the requested game.
var ErrNotFound = errors.New("game save not found")

// Storage persists game snapshots between sessions.
type Storage interface {
	SaveGame(save *models.GameSave) error
	LoadGame(id string) (*models.GameSave, error)
	DeleteGame(id string) error
	Close() error
}
