package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Olzhas-T/contest-system/formation"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: ограничить Origin доменом фронтенда перед продакшеном.
		return true
	},
}

type WebSocketHandler struct {
	hub *formation.Hub
}

func NewWebSocketHandler(hub *formation.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ServeWs подключает клиента к комнате соревнования:
// /ws/competitions/{competitionID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := strconv.Atoi(chi.URLParam(r, "competitionID"))
	if err != nil || competitionID <= 0 {
		http.Error(w, "invalid competitionID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade connection for competition %d: %v", competitionID, err)
		return
	}

	client := &formation.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: formation.CompetitionRoom(competitionID),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
