package handlers

import (
	"net/http"
	"time"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/gorilla/websocket"
)

type RealtimeHandler struct {
	hub *services.RealtimeHub
}

func NewRealtimeHandler(hub *services.RealtimeHub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (handler *RealtimeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &services.WSClient{UserID: user.ID, Conn: conn}
	handler.hub.Register(client)

	// Keep-alive pings for proxies that drop idle connections.
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := client.Write(websocket.PingMessage, nil); err != nil {
				handler.hub.Unregister(client)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			handler.hub.Unregister(client)
			return
		}
	}
}
