package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents a WebSocket client connection
type Client struct {
	ID           string          // Unique client ID
	NickName     string          // Nickname the connection identified with
	Conn         *websocket.Conn // WebSocket connection
	Send         chan []byte     // Outbound message channel
	destinations map[string]bool // Subscribed destinations
	mu           sync.RWMutex    // Protects destinations map and conn writes
}

func NewClient(conn *websocket.Conn, nickName string) *Client {
	return &Client{
		ID:           uuid.New().String(),
		NickName:     nickName,
		Conn:         conn,
		Send:         make(chan []byte, 256),
		destinations: make(map[string]bool),
	}
}

func (c *Client) subscribe(destination string) {
	c.mu.Lock()
	c.destinations[destination] = true
	c.mu.Unlock()
}

func (c *Client) unsubscribe(destination string) {
	c.mu.Lock()
	delete(c.destinations, destination)
	c.mu.Unlock()
}

// IsSubscribed checks if the client is subscribed to a destination
func (c *Client) IsSubscribed(destination string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.destinations[destination]
}

// WriteLoop handles outbound messages from the Send channel
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.close()
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.close()
				return
			}
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
			c.mu.Unlock()
		case <-ticker.C:
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.PingMessage, []byte("ping"))
			c.mu.Unlock()
		}
	}
}

func (c *Client) close() {
	c.mu.Lock()
	_ = c.Conn.Close()
	c.mu.Unlock()
}

// SendMessage sends a message to the client's Send channel (non-blocking)
func (c *Client) SendMessage(msg []byte) {
	select {
	case c.Send <- msg:
	default:
		// Channel full, message dropped
	}
}
