package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JDR69/DeporteDubss/league"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub    *league.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *league.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs subscribes the client to live updates for one championship.
// Clients connect to /ws/championships/{championshipID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	championshipID := chi.URLParam(r, "championshipID")
	if championshipID == "" {
		http.Error(w, "missing championshipID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("championship_id", championshipID),
			slog.Any("error", err),
		)
		return
	}

	client := &league.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: "championship_" + championshipID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
