package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gridquest/server/models"
)

// JSONStore keeps game saves in a single local JSON file. It is the default
// backend when no database is configured.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Games map[string]*models.GameSave `json:"games"`
}

// NewJSONStore opens (or creates) the JSON save file at filePath.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &jsonData{
			Games: make(map[string]*models.GameSave),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(file, js.data)
}

func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, data, 0644)
}

// SaveGame stores or replaces a game snapshot.
func (js *JSONStore) SaveGame(save *models.GameSave) error {
	js.mutex.Lock()
	js.data.Games[save.ID] = save
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadGame returns the snapshot for id, or ErrNotFound.
func (js *JSONStore) LoadGame(id string) (*models.GameSave, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	save, exists := js.data.Games[id]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return save, nil
}

// DeleteGame removes the snapshot for id. Deleting an absent game is a
// no-op.
func (js *JSONStore) DeleteGame(id string) error {
	js.mutex.Lock()
	delete(js.data.Games, id)
	js.mutex.Unlock()

	return js.saveToFile()
}

// Close is a no-op for the JSON store.
func (js *JSONStore) Close() error {
	return nil
}
