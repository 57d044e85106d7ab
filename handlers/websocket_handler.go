package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sarzhanov/fishing-live/live"
	"github.com/sarzhanov/fishing-live/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Display screens connect from the venue network; origin checks
		// belong in the reverse proxy config.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeStandings upgrades a display client into a standings room. The room
// is a sector letter or "general".
func (h *WebSocketHandler) ServeStandings(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if room != live.RoomGeneral && !models.IsValidSector(room) {
		http.Error(w, "Unknown room", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for room %s: %v", room, err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: room,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
