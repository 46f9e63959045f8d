package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"swingboard-backend/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Handler streams the latest analyzed set to connected dashboards.
type Handler struct {
	repo domain.SignalRepository
}

func NewHandler(repo domain.SignalRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Println("New dashboard client connected")

	// Send initial data immediately
	coins := h.repo.GetCoins()
	if err := conn.WriteJSON(coins); err != nil {
		log.Println("Write error:", err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.repo.GetCoins()); err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
