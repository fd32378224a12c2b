package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gridquest/server/config"
	"gridquest/server/messages"
	"gridquest/server/models"
	"gridquest/server/network"
	"gridquest/server/persistence"
	"gridquest/server/services"
)

// ClientHandler runs one client's game over a WebSocket connection. It is
// the presentation collaborator: the game service pushes world snapshots
// into it and it forwards them as frames.
type ClientHandler struct {
	conn    *network.Connection
	gameCfg config.GameConfig
	store   persistence.Storage
	manager *ClientManager
	session string
	game    *services.GameService

	// Set by the View callbacks during a HandleMove call and flushed by
	// handleMove afterwards. All message handling for one connection runs
	// on a single goroutine, so no locking is needed here.
	pendingUpdate   *messages.UpdateMessage
	pendingGameOver bool
}

// HandleClientConnection services a new WebSocket client until it
// disconnects.
func HandleClientConnection(wsConn *websocket.Conn, gameCfg config.GameConfig, store persistence.Storage, manager *ClientManager) {
	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		conn:    conn,
		gameCfg: gameCfg,
		store:   store,
		manager: manager,
		session: uuid.NewString(),
	}
	manager.Add(handler.session, handler)

	go conn.WritePump()
	conn.ReadPump(handler)

	manager.Remove(handler.session)
	log.Printf("session %s disconnected", handler.session)
}

// HandleMessage dispatches one incoming frame.
func (h *ClientHandler) HandleMessage(_ *network.Connection, message []byte) {
	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		log.Printf("session %s: bad frame: %v", h.session, err)
		h.sendError("BAD_MESSAGE", "message is not valid JSON")
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeJoin:
		h.handleJoin(baseMsg.Payload)
	case messages.MessageTypeMove:
		h.handleMove(baseMsg.Payload)
	default:
		log.Printf("session %s: unknown message type %q", h.session, baseMsg.Type)
		h.sendError("UNKNOWN_MESSAGE_TYPE", "unknown message type")
	}
}

func (h *ClientHandler) handleJoin(payload interface{}) {
	var joinMsg messages.JoinMessage
	if err := decodePayload(payload, &joinMsg); err != nil {
		log.Printf("session %s: bad join payload: %v", h.session, err)
		h.sendError("BAD_PAYLOAD", "malformed join payload")
		return
	}

	if h.game != nil {
		h.sendError("ALREADY_JOINED", "a game is already running on this connection")
		return
	}

	seed := h.gameCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	spawn := services.NewRandomSpawn(rng)

	var (
		world  *services.WorldMap
		gameID string
		err    error
	)
	if joinMsg.GameID != "" {
		gameID = joinMsg.GameID
		world, err = h.resumeGame(gameID, spawn, rng)
	} else {
		gameID = uuid.NewString()
		world, err = services.NewWorldMap(
			h.gameCfg.Width, h.gameCfg.Height,
			h.gameCfg.Enemies, h.gameCfg.Collectables,
			spawn, rng)
	}
	if err != nil {
		log.Printf("session %s: start game: %v", h.session, err)
		h.sendError("JOIN_FAILED", err.Error())
		return
	}

	h.game = services.NewGameService(gameID, world, h.store)
	h.game.AttachView(h)
}

// resumeGame loads a saved game, falling back to a fresh board when the
// save is gone.
func (h *ClientHandler) resumeGame(gameID string, spawn services.SpawnStrategy, rng *rand.Rand) (*services.WorldMap, error) {
	save, err := h.store.LoadGame(gameID)
	if errors.Is(err, persistence.ErrNotFound) {
		return services.NewWorldMap(
			h.gameCfg.Width, h.gameCfg.Height,
			h.gameCfg.Enemies, h.gameCfg.Collectables,
			spawn, rng)
	}
	if err != nil {
		return nil, err
	}
	return services.RestoreWorldMap(save, spawn, rng)
}

func (h *ClientHandler) handleMove(payload interface{}) {
	if h.game == nil {
		h.sendError("NOT_JOINED", "join a game before moving")
		return
	}

	var moveMsg messages.MoveMessage
	if err := decodePayload(payload, &moveMsg); err != nil {
		log.Printf("session %s: bad move payload: %v", h.session, err)
		h.sendError("BAD_PAYLOAD", "malformed move payload")
		return
	}

	dir, err := models.ParseDirection(moveMsg.Direction)
	if err != nil {
		h.sendError("BAD_DIRECTION", err.Error())
		return
	}

	out, result := h.game.HandleMove(dir)

	if h.pendingUpdate != nil {
		h.pendingUpdate.Moved = out.Moved
		h.pendingUpdate.Collected = out.Collected
		h.send(messages.MessageTypeUpdate, *h.pendingUpdate)
		h.pendingUpdate = nil
	}
	if h.pendingGameOver {
		h.pendingGameOver = false
		h.send(messages.MessageTypeGameOver, messages.GameOverMessage{Result: string(result)})
	}
}

// InitializeView implements services.View.
func (h *ClientHandler) InitializeView(playerPos models.Point, entities []models.EntityPos) {
	world := h.game.World()
	h.send(messages.MessageTypeInit, messages.InitMessage{
		GameID: h.game.ID(),
		Width:  world.Width(),
		Height: world.Height(),
		Player: messages.PlayerSnapshot{
			Pos:    playerPos,
			Health: world.Player().Health(),
		},
		Entities:         entities,
		CollectablesLeft: world.CollectablesRemaining(),
	})
}

// UpdateWorldMap implements services.View. The frame is staged rather than
// sent so handleMove can attach the turn outcome first.
func (h *ClientHandler) UpdateWorldMap(playerPos models.Point, remaining int, entities []models.EntityPos) {
	h.pendingUpdate = &messages.UpdateMessage{
		Player: messages.PlayerSnapshot{
			Pos:    playerPos,
			Health: h.game.World().Player().Health(),
		},
		Entities:         entities,
		CollectablesLeft: remaining,
	}
}

// GameOver implements services.View.
func (h *ClientHandler) GameOver() {
	h.pendingGameOver = true
}

func (h *ClientHandler) send(msgType messages.MessageType, payload interface{}) {
	msg := messages.BaseMessage{Type: msgType, Payload: payload}
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("session %s: send %s: %v", h.session, msgType, err)
	}
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.MessageTypeError, messages.ErrorMessage{Code: code, Message: message})
}

// decodePayload remarshals the loosely typed payload into its concrete
// message struct.
func decodePayload(payload interface{}, dst interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
