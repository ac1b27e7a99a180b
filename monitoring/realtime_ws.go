package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType identifies a monitor stream message.
type MessageType string

const (
	PredictionEvent MessageType = "prediction_event"
	SystemStatus    MessageType = "system_status"
	Heartbeat       MessageType = "heartbeat"
)

// Message is the envelope for everything broadcast to monitor clients.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// PredictionEventMessage describes one completed prediction. No raw input
// fields are included; the stream carries outcomes only.
type PredictionEventMessage struct {
	Label       string  `json:"label"`
	HealthScore float64 `json:"health_score"`
	LatencyMS   float64 `json:"latency_ms"`
}

// SystemStatusMessage reports service state transitions.
type SystemStatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans prediction events out to connected websocket clients. Slow
// consumers are dropped rather than allowed to stall the broadcast loop.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	done       chan struct{}
}

// NewHub creates a hub; call Run in a goroutine to start it.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Run drives registration and broadcast until Stop is called.
func (h *Hub) Run() {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("monitor client connected", zap.String("client", c.id), zap.Int("total", total))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("monitor client disconnected", zap.String("client", c.id), zap.Int("total", total))

		case message := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-heartbeat.C:
			h.publish(Heartbeat, map[string]string{"status": "alive"})

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	close(h.done)
}

// HandleWebSocket upgrades the request and attaches the client to the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
		id:   fmt.Sprintf("monitor_%d", time.Now().UnixNano()),
	}
	h.register <- c

	go c.writePump()
	go c.readPump(h)
}

// PublishPrediction broadcasts a completed prediction to all clients.
func (h *Hub) PublishPrediction(event PredictionEventMessage) {
	h.publish(PredictionEvent, event)
}

// PublishStatus broadcasts a service state transition.
func (h *Hub) PublishStatus(status SystemStatusMessage) {
	h.publish(SystemStatus, status)
}

func (h *Hub) publish(msgType MessageType, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to marshal monitor message", zap.Error(err))
		return
	}
	envelope, err := json.Marshal(Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      payload,
	})
	if err != nil {
		h.logger.Error("failed to marshal monitor envelope", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- envelope:
	default:
		h.logger.Warn("monitor broadcast queue full, dropping message")
	}
}

func (c *client) writePump() {
	ping := time.NewTicker(30 * time.Second)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	// the monitor stream is one-way; reads only service control frames
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
