package websocket

import (
	"context"
	"sync"
)

// subscriptionRequest represents a destination subscribe/unsubscribe request
type subscriptionRequest struct {
	client      *Client
	destination string
	subscribe   bool
}

// Hub manages WebSocket client connections and their destination
// subscriptions. Payloads published on a destination are delivered to every
// locally connected subscriber.
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// destinations maps destination name to its set of subscribed clients
	destinations map[string]map[*Client]struct{}

	register     chan *Client
	unregister   chan *Client
	subscription chan subscriptionRequest
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[string]*Client),
		destinations: make(map[string]map[*Client]struct{}),
		register:     make(chan *Client, 256),
		unregister:   make(chan *Client, 256),
		subscription: make(chan subscriptionRequest, 512),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case req := <-h.subscription:
			if req.subscribe {
				h.subscribeToDestination(req.client, req.destination)
			} else {
				h.unsubscribeFromDestination(req.client, req.destination)
			}
		}
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe subscribes a client to a destination
func (h *Hub) Subscribe(client *Client, destination string) {
	h.subscription <- subscriptionRequest{
		client:      client,
		destination: destination,
		subscribe:   true,
	}
}

// Unsubscribe unsubscribes a client from a destination
func (h *Hub) Unsubscribe(client *Client, destination string) {
	h.subscription <- subscriptionRequest{
		client:      client,
		destination: destination,
		subscribe:   false,
	}
}

// Broadcast sends a payload to all clients subscribed to a destination
func (h *Hub) Broadcast(destination string, payload []byte) {
	h.mu.RLock()
	clients := h.destinations[destination]
	for c := range clients {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SubscriberCount returns the number of subscribers for a destination
func (h *Hub) SubscriberCount(destination string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.destinations[destination])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for destination := range client.destinations {
		if subscribers, ok := h.destinations[destination]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.destinations, destination)
			}
		}
	}

	delete(h.clients, client.ID)

	close(client.Send)
}

func (h *Hub) subscribeToDestination(client *Client, destination string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.destinations[destination]; !ok {
		h.destinations[destination] = make(map[*Client]struct{})
	}
	h.destinations[destination][client] = struct{}{}

	client.subscribe(destination)
}

func (h *Hub) unsubscribeFromDestination(client *Client, destination string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscribers, ok := h.destinations[destination]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.destinations, destination)
		}
	}

	client.unsubscribe(destination)
}
