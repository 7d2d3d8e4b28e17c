package websocket

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 32
)

// Client is one browser tab connected to a session.
type Client struct {
	SessionID string

	conn      *websocket.Conn
	send      chan ServerMessage
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(sessionID string, conn *websocket.Conn) *Client {
	return &Client{
		SessionID: sessionID,
		conn:      conn,
		send:      make(chan ServerMessage, sendBuffer),
		done:      make(chan struct{}),
	}
}

// Send queues msg without blocking. It reports false when the client is gone
// or too far behind.
func (c *Client) Send(msg ServerMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		log.Warn("websocket client too slow, dropping frame", "session", c.SessionID)
		return false
	}
}

// Close stops the writer and closes the socket. Safe to call repeatedly.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump is the only goroutine writing to the socket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
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

// ConnectionManager tracks the open sockets of every session thread-safely.
type ConnectionManager struct {
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (cm *ConnectionManager) Add(c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	set, ok := cm.clients[c.SessionID]
	if !ok {
		set = make(map[*Client]struct{})
		cm.clients[c.SessionID] = set
	}
	set[c] = struct{}{}
}

func (cm *ConnectionManager) Remove(c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if set, ok := cm.clients[c.SessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(cm.clients, c.SessionID)
		}
	}
}

// Count returns the number of sockets open for sessionID.
func (cm *ConnectionManager) Count(sessionID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients[sessionID])
}

func (cm *ConnectionManager) Total() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	n := 0
	for _, set := range cm.clients {
		n += len(set)
	}
	return n
}

// CloseAll disconnects every client, used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, set := range cm.clients {
		for c := range set {
			c.Close()
		}
	}
	cm.clients = make(map[string]map[*Client]struct{})
}
