package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// ClientMessage is the JSON structure received from clients.
//
//	{"t":"resize","w":1280,"h":720}
//	{"t":"click","x":410,"y":233,"l":128,"tp":72}
type ClientMessage struct {
	Type   string  `json:"t"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Left   float64 `json:"l,omitempty"`
	Top    float64 `json:"tp,omitempty"`
}

// Circle is one filled target in a frame.
type Circle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// ServerMessage is the JSON structure sent to clients. Score is always sent
// so a zero score still reaches the page.
type ServerMessage struct {
	Type    string   `json:"t"`
	Width   float64  `json:"w,omitempty"`
	Height  float64  `json:"h,omitempty"`
	Score   int      `json:"s"`
	Fill    string   `json:"f,omitempty"`
	Circles []Circle `json:"c,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// SendMessage queues msg for the write pump. Non-blocking: drops if channel full.
func (c *Client) SendMessage(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop message if channel full
	}
}

// Hub tracks the live game sessions.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.SessionID] = c
}

// Unregister removes a client and closes its Send channel. Nothing may be
// queued on the client afterwards.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[sessionID]; ok {
		close(c.Send)
		delete(h.clients, sessionID)
	}
}

func (h *Hub) Get(sessionID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[sessionID]
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
