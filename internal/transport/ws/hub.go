package ws

import (
	"encoding/json"
	"log"
	"sync"

	"feudlive/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgGameState MessageType = "game_state"
	MsgError     MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages viewer WebSocket connections per game code. Every published
// snapshot is fanned out to all viewers of that code.
type Hub struct {
	viewers map[string]map[*Connection]bool // game code -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
}

// Connection represents a viewer WebSocket connection
type Connection struct {
	GameCode string
	Send     chan []byte
	Hub      *Hub
}

type broadcastMessage struct {
	GameCode string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		viewers:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.viewers[conn.GameCode] == nil {
				h.viewers[conn.GameCode] = make(map[*Connection]bool)
			}
			h.viewers[conn.GameCode][conn] = true
			log.Printf("Viewer connected to game %s", conn.GameCode)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.viewers[conn.GameCode]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Viewer disconnected from game %s", conn.GameCode)
				}
				if len(conns) == 0 {
					delete(h.viewers, conn.GameCode)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.viewers[msg.GameCode] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastGameState fans the snapshot out to every viewer of the game
// (implements service.Broadcaster). Never blocks the caller.
func (h *Hub) BroadcastGameState(code string, game *model.Game) {
	data, err := json.Marshal(game)
	if err != nil {
		log.Printf("Failed to marshal game %s snapshot: %v", code, err)
		return
	}
	msg := &broadcastMessage{
		GameCode: code,
		Message: &Message{
			Type:    MsgGameState,
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	default:
		// Drop snapshot rather than stall a mutation
	}
}
