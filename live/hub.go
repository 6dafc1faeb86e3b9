package live

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"torneo-mus/models"
)

// RoomRanking receives every event; match rooms only receive updates
// for their own match.
const RoomRanking = "ranking"

func MatchRoom(matchID int) string {
	return fmt.Sprintf("match:%d", matchID)
}

const (
	EventMatchUpdated      = "MATCH_UPDATED"
	EventScheduleGenerated = "SCHEDULE_GENERATED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Room    string      `json:"room,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub fans events out to websocket clients grouped by room.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, registered := clients[client]; registered {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyMatchUpdated implements services.LiveNotifier.
func (h *Hub) NotifyMatchUpdated(match *models.Match) {
	event := Event{Type: EventMatchUpdated, Payload: match}
	h.broadcast(MatchRoom(match.ID), event)
	h.broadcast(RoomRanking, event)
}

// NotifyScheduleGenerated implements services.LiveNotifier.
func (h *Hub) NotifyScheduleGenerated(matchCount int) {
	h.broadcast(RoomRanking, Event{
		Type:    EventScheduleGenerated,
		Payload: map[string]int{"match_count": matchCount},
	})
}

func (h *Hub) broadcast(room string, event Event) {
	event.Room = room

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("live: failed to marshal %s event for room %s: %v", event.Type, room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- message:
			default:
				// Slow consumer; drop the event rather than block the hub.
			}
		}
		client.mu.Unlock()
	}
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	room string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		room: room,
		send: make(chan []byte, 16),
	}
}

// Start registers the client and runs its pumps. Blocks until the
// connection drops.
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	c.readPump()
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Inbound messages are ignored; reading just drives the
		// pong handler and detects disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: client in room %s disconnected: %v", c.room, err)
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
