package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 4096
	sendBufferSize = 32
)

// SendFunc routes an inbound frame through the chat service so live
// sends follow the same gating as REST sends.
type SendFunc func(ctx context.Context, userID, bookingID int64, body string) error

type roomMessage struct {
	bookingID int64
	payload   []byte
}

// Hub keeps one room per booking and fans broadcasts out to every
// connection in that room. The Run loop owns all room state.
type Hub struct {
	rooms      map[int64]map[*Client]bool
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
	logger     *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		rooms:      make(map[int64]map[*Client]bool),
		broadcast:  make(chan roomMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes room membership and broadcasts until the context is
// cancelled. Start it exactly once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			room := h.rooms[client.bookingID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[client.bookingID] = room
			}
			room[client] = true
		case client := <-h.unregister:
			if room, ok := h.rooms[client.bookingID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.bookingID)
					}
				}
			}
		case msg := <-h.broadcast:
			for client := range h.rooms[msg.bookingID] {
				select {
				case client.send <- msg.payload:
				default:
					// slow consumer, drop the connection
					delete(h.rooms[msg.bookingID], client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast queues a payload for everyone in the booking's room. The
// thread in the database is the record; a frame dropped under
// backpressure is recovered by the history endpoint.
func (h *Hub) Broadcast(bookingID int64, payload []byte) {
	select {
	case h.broadcast <- roomMessage{bookingID: bookingID, payload: payload}:
	default:
		h.logger.Warn(fmt.Sprintf("chat broadcast queue full, dropping frame for booking %v", bookingID))
	}
}

type inboundFrame struct {
	Body string `json:"body"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// Client is one live connection bound to a booking room.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	bookingID int64
	userID    int64
	sendFn    SendFunc
}

// Join attaches an upgraded connection to the booking's room and
// starts its pumps. The caller must have authorized the user for the
// booking first.
func (h *Hub) Join(conn *websocket.Conn, bookingID, userID int64, sendFn SendFunc) *Client {
	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		bookingID: bookingID,
		userID:    userID,
		sendFn:    sendFn,
	}
	h.register <- client
	go client.writePump()
	go client.readPump()
	return client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Error(fmt.Sprintf("chat connection for booking %v dropped: %v", c.bookingID, err))
			}
			return
		}
		if c.sendFn == nil {
			continue
		}
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.reportError("messages must be JSON with a body field")
			continue
		}
		if err := c.sendFn(context.Background(), c.userID, c.bookingID, frame.Body); err != nil {
			c.reportError(err.Error())
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
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

// errors raised by the service on an inbound frame go back to the
// sending connection only, never into the room.
func (c *Client) reportError(msg string) {
	payload, err := json.Marshal(errorFrame{Error: msg})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
