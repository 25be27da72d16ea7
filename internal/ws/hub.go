package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope pushed to every connected client.
type Event struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	At      time.Time   `json:"at"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Hub fans stock events out to websocket clients. Publish never blocks the
// caller: if the broadcast buffer is full the event is dropped and logged.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	done       chan struct{}
	stopOnce   sync.Once
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Publish stamps and enqueues an event for broadcast.
func (h *Hub) Publish(eventType, action, message string, data interface{}) {
	evt := Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Action:  action,
		At:      time.Now().UTC(),
		Message: message,
		Data:    data,
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("failed to encode event", zap.String("action", action), zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("event buffer full, dropping event", zap.String("action", action), zap.String("event_id", evt.ID))
	}
}

// Stop ends Run and closes every client connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("websocket client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Serve registers conn, blocks until the client goes away and unregisters
// it. Incoming messages are read and discarded.
func (h *Hub) Serve(conn *websocket.Conn) {
	select {
	case h.Register <- conn:
	case <-h.done:
		return
	}
	defer func() {
		select {
		case h.Unregister <- conn:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
