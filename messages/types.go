package messages

import "gridquest/server/models"

// MessageType defines the type of message being sent.
type MessageType string

const (
	MessageTypeJoin     MessageType = "join"
	MessageTypeMove     MessageType = "move"
	MessageTypeInit     MessageType = "init"
	MessageTypeUpdate   MessageType = "update"
	MessageTypeGameOver MessageType = "game_over"
	MessageTypeError    MessageType = "error"
)

// BaseMessage is the envelope for every frame on the wire.
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// JoinMessage starts a game. GameID resumes a saved game when present;
// an empty GameID starts a fresh one.
type JoinMessage struct {
	GameID string `json:"game_id,omitempty"`
}

// MoveMessage requests one player step.
type MoveMessage struct {
	Direction string `json:"direction"` // north, south, east, west
}

// PlayerSnapshot is the player's wire representation.
type PlayerSnapshot struct {
	Pos    models.Point `json:"pos"`
	Health int          `json:"health"`
}

// InitMessage is sent once after a game is created or resumed.
type InitMessage struct {
	GameID           string             `json:"game_id"`
	Width            int                `json:"width"`
	Height           int                `json:"height"`
	Player           PlayerSnapshot     `json:"player"`
	Entities         []models.EntityPos `json:"entities"`
	CollectablesLeft int                `json:"collectables_left"`
}

// UpdateMessage is sent after every processed movement command.
type UpdateMessage struct {
	Player           PlayerSnapshot     `json:"player"`
	Entities         []models.EntityPos `json:"entities"`
	CollectablesLeft int                `json:"collectables_left"`
	Moved            bool               `json:"moved"`
	Collected        bool               `json:"collected"`
}

// GameOverMessage ends a game.
type GameOverMessage struct {
	Result string `json:"result"` // won, lost
}

// ErrorMessage reports a request the server could not process.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
