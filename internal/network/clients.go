package network

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one connected spectator.
type Client struct {
	ID          string
	ConnectedAt time.Time

	conn   *websocket.Conn
	send   chan []byte
	closed bool
	mu     sync.Mutex
}

func NewClient(conn *websocket.Conn, buffer int) *Client {
	return &Client{
		ID:          uuid.New().String(),
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan []byte, buffer),
	}
}

// Offer queues a frame, dropping it if the client is behind.
func (c *Client) Offer(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

type ClientManager struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]*Client),
	}
}

func (cm *ClientManager) Add(c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[c.ID] = c
}

// Remove drops the client and closes its send queue.
func (cm *ClientManager) Remove(id string) {
	cm.mu.Lock()
	c, ok := cm.clients[id]
	delete(cm.clients, id)
	cm.mu.Unlock()

	if ok {
		c.close()
	}
}

func (cm *ClientManager) GetAll() []*Client {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	result := make([]*Client, 0, len(cm.clients))
	for _, c := range cm.clients {
		result = append(result, c)
	}
	return result
}

func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// Broadcast offers the frame to every client and returns how many were behind.
func (cm *ClientManager) Broadcast(frame []byte) int {
	dropped := 0
	for _, c := range cm.GetAll() {
		if !c.Offer(frame) {
			dropped++
		}
	}
	return dropped
}

func (cm *ClientManager) CloseAll() {
	for _, c := range cm.GetAll() {
		cm.Remove(c.ID)
	}
}
