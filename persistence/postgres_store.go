package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"gridquest/server/models"
)

// PostgresStore keeps game saves in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS game_saves (
		id TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		player JSONB NOT NULL,
		entities JSONB NOT NULL,
		collectables_left INTEGER NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveGame upserts a game snapshot.
func (ps *PostgresStore) SaveGame(save *models.GameSave) error {
	playerJSON, err := json.Marshal(save.Player)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}
	entitiesJSON, err := json.Marshal(save.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entity states: %w", err)
	}

	query := `
	INSERT INTO game_saves (id, width, height, player, entities, collectables_left, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		player = $4, entities = $5, collectables_left = $6,
		updated_at = $7
	`

	_, err = ps.db.Exec(query,
		save.ID, save.Width, save.Height,
		string(playerJSON), string(entitiesJSON),
		save.CollectablesLeft, save.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// LoadGame returns the snapshot for id, or ErrNotFound.
func (ps *PostgresStore) LoadGame(id string) (*models.GameSave, error) {
	query := `
	SELECT id, width, height, player, entities, collectables_left, updated_at
	FROM game_saves WHERE id = $1
	`

	save := &models.GameSave{}
	var playerJSON, entitiesJSON []byte
	err := ps.db.QueryRow(query, id).Scan(
		&save.ID, &save.Width, &save.Height,
		&playerJSON, &entitiesJSON,
		&save.CollectablesLeft, &save.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if err := json.Unmarshal(playerJSON, &save.Player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player state: %w", err)
	}
	if err := json.Unmarshal(entitiesJSON, &save.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity states: %w", err)
	}
	return save, nil
}

// DeleteGame removes the snapshot for id.
func (ps *PostgresStore) DeleteGame(id string) error {
	_, err := ps.db.Exec(`DELETE FROM game_saves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
