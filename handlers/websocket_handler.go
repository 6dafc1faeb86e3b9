package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"torneo-mus/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The CORS policy is enforced by the router middleware; the
	// websocket endpoint only carries read-only updates.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Serve upgrades the connection and subscribes it to a room: the
// ranking room by default, or a single match via ?match={id}.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	room := live.RoomRanking
	if matchParam := r.URL.Query().Get("match"); matchParam != "" {
		matchID, err := strconv.Atoi(matchParam)
		if err != nil || matchID <= 0 {
			badRequestResponse(w, r, errors.New("match must be a positive integer"))
			return
		}
		room = live.MatchRoom(matchID)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	live.NewClient(h.hub, conn, room).Start()
}
