package http

import (
	"encoding/json"
	"net/http"

	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/usecase"
)

// SignalHandler serves the latest analysis pass.
type SignalHandler struct {
	repo domain.SignalRepository
}

func NewSignalHandler(repo domain.SignalRepository) *SignalHandler {
	return &SignalHandler{repo: repo}
}

// GetSignals handles GET /api/signals
func (h *SignalHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	coins := h.repo.GetCoins()
	if coins == nil {
		coins = make([]domain.AnalyzedCoin, 0)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(coins)
}

// GetTopSignals handles GET /api/signals/top — the high-quality BUY
// subset, best score first. An empty list is a valid state, not an
// error; the client renders it as "no signals met the bar".
func (h *SignalHandler) GetTopSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	top := usecase.HighQualitySignals(h.repo.GetCoins())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(top)
}
