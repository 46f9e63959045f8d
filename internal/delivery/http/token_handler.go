package http

import (
	"encoding/json"
	"net/http"
	"time"

	"swingboard-backend/internal/domain"
)

// TokenHandler registers device tokens for push alerts.
type TokenHandler struct {
	tokenRepo domain.DeviceTokenRepository
}

func NewTokenHandler(tokenRepo domain.DeviceTokenRepository) *TokenHandler {
	return &TokenHandler{tokenRepo: tokenRepo}
}

type tokenPayload struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// Register handles POST /api/tokens/register
func (h *TokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload tokenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	h.tokenRepo.Register(domain.DeviceToken{
		Token:        payload.Token,
		Platform:     payload.Platform,
		RegisteredAt: time.Now(),
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"registered"}`))
}

// Unregister handles POST /api/tokens/unregister
func (h *TokenHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload tokenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.tokenRepo.Unregister(payload.Token)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"unregistered"}`))
}
