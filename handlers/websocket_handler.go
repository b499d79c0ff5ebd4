package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectator pages connect from whatever host serves the frontend.
		return true
	},
}

type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeDivision subscribes the connection to one division's live updates.
func (h *WebSocketHandler) ServeDivision(w http.ResponseWriter, r *http.Request) {
	division, ok := models.ParseDivision(chi.URLParam(r, "division"))
	if !ok {
		http.Error(w, "unknown division", http.StatusBadRequest)
		return
	}
	h.serve(w, r, "division_"+string(division))
}

// ServeStableford subscribes the connection to the individual event feed.
func (h *WebSocketHandler) ServeStableford(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "stableford")
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("Failed to upgrade connection for room %s: %v", roomID, err)
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
