package network

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Connection wraps a WebSocket connection with a buffered outgoing queue so
// game code never blocks on a slow client.
type Connection struct {
	ws   *websocket.Conn
	send chan []byte
}

// NewConnection wraps an upgraded WebSocket connection.
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ws:   ws,
		send: make(chan []byte, 256),
	}
}

// MessageHandler receives every frame read from the connection.
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}

// ReadPump reads frames from the connection and feeds them to h until the
// peer disconnects.
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.ws.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("read error: %v", err)
			}
			return
		}
		h.HandleMessage(c, message)
	}
}

// WritePump drains the outgoing queue onto the wire.
func (c *Connection) WritePump() {
	defer c.ws.Close()

	for message := range c.send {
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendMessage marshals msg and queues it for delivery. A full queue drops
// the connection rather than stalling the game loop.
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- messageBytes:
	default:
		c.ws.Close()
	}
	return nil
}
