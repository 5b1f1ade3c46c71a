package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// ChangeEvent tells a connected client that one of its datasets changed
// and should be re-fetched.
type ChangeEvent struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
}

type WSClient struct {
	UserID string
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Write serializes all writes to the connection. gorilla/websocket allows
// only one concurrent writer, and events and keep-alive pings come from
// different goroutines.
func (client *WSClient) Write(messageType int, data []byte) error {
	client.writeMu.Lock()
	defer client.writeMu.Unlock()
	return client.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans entity-change notifications out to every open
// connection belonging to the affected user.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (hub *RealtimeHub) Register(client *WSClient) {
	hub.mu.Lock()
	if hub.clients[client.UserID] == nil {
		hub.clients[client.UserID] = make(map[*WSClient]struct{})
	}
	hub.clients[client.UserID][client] = struct{}{}
	hub.mu.Unlock()
}

func (hub *RealtimeHub) Unregister(client *WSClient) {
	hub.mu.Lock()
	if set := hub.clients[client.UserID]; set != nil {
		delete(set, client)
		if len(set) == 0 {
			delete(hub.clients, client.UserID)
		}
	}
	hub.mu.Unlock()
	_ = client.Conn.Close()
}

// Publish sends an event to all of a user's connections. A failed write
// is ignored; the read loop will notice the dead connection and
// unregister it.
func (hub *RealtimeHub) Publish(userID string, event ChangeEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		return
	}
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for client := range hub.clients[userID] {
		_ = client.Write(websocket.TextMessage, message)
	}
}
