package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"teamup-board-api/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 256
)

// Client is one websocket subscriber of a board
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	boardID uuid.UUID
	userID  uuid.UUID
	hub     *Hub
}

type room struct {
	clients     map[*Client]bool
	unsubscribe func()
}

// Hub keeps websocket clients grouped by board and forwards each board's
// broker events to them. A board is subscribed while it has at least one client.
type Hub struct {
	broker     Broker
	logger     *zap.Logger
	metrics    *metrics.Metrics
	rooms      map[uuid.UUID]*room
	roomsMu    sync.Mutex
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. Call Run to start it.
func NewHub(broker Broker, logger *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		broker:     broker,
		logger:     logger,
		metrics:    m,
		rooms:      make(map[uuid.UUID]*room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled, then drops every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		}
	}
}

func (h *Hub) add(client *Client) {
	h.roomsMu.Lock()
	r, ok := h.rooms[client.boardID]
	if !ok {
		r = &room{clients: make(map[*Client]bool)}
		h.rooms[client.boardID] = r
		events, unsubscribe := h.broker.Subscribe(context.Background(), client.boardID)
		r.unsubscribe = unsubscribe
		go h.forward(client.boardID, r, events)
	}
	r.clients[client] = true
	count := len(r.clients)
	h.roomsMu.Unlock()

	h.metrics.AddWebsocketClients(1)
	h.logger.Info("Board subscriber registered",
		zap.String("board_id", client.boardID.String()),
		zap.String("user_id", client.userID.String()),
		zap.Int("subscribers", count))
}

func (h *Hub) remove(client *Client) {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	h.detach(client)
}

// detach must be called with roomsMu held
func (h *Hub) detach(client *Client) {
	r, ok := h.rooms[client.boardID]
	if !ok || !r.clients[client] {
		return
	}
	delete(r.clients, client)
	close(client.send)
	h.metrics.AddWebsocketClients(-1)

	if len(r.clients) == 0 {
		delete(h.rooms, client.boardID)
		r.unsubscribe()
	}
	h.logger.Info("Board subscriber unregistered",
		zap.String("board_id", client.boardID.String()),
		zap.String("user_id", client.userID.String()))
}

func (h *Hub) closeAll() {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	for _, r := range h.rooms {
		for client := range r.clients {
			h.detach(client)
		}
	}
}

// forward relays one room's events until its subscription ends
func (h *Hub) forward(boardID uuid.UUID, r *room, events <-chan ChangeEvent) {
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("Failed to encode board event", zap.Error(err))
			continue
		}
		h.broadcast(boardID, r, payload)
	}
}

func (h *Hub) broadcast(boardID uuid.UUID, r *room, payload []byte) {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()

	// the room may have been replaced after its last client left
	if h.rooms[boardID] != r {
		return
	}
	for client := range r.clients {
		select {
		case client.send <- payload:
		default:
			// slow consumer
			h.logger.Warn("Dropping slow board subscriber",
				zap.String("board_id", boardID.String()),
				zap.String("user_id", client.userID.String()))
			h.detach(client)
		}
	}
}

// Subscribers returns the number of clients on a board
func (h *Hub) Subscribers(boardID uuid.UUID) int {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	if r, ok := h.rooms[boardID]; ok {
		return len(r.clients)
	}
	return 0
}

// Serve registers an upgraded connection and runs its pumps. It returns immediately.
func (h *Hub) Serve(conn *websocket.Conn, boardID, userID uuid.UUID) {
	client := &Client{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		boardID: boardID,
		userID:  userID,
		hub:     h,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only keeps the connection alive; board clients send nothing meaningful
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
