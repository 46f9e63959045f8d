package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/usecase"
)

// TradeHandler handles trade journal endpoints.
type TradeHandler struct {
	repo domain.TradeEntryRepository
}

func NewTradeHandler(repo domain.TradeEntryRepository) *TradeHandler {
	return &TradeHandler{repo: repo}
}

// CreateEntry handles POST /api/trades
func (h *TradeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var entry domain.TradeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Set default values
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if entry.EntryTime.IsZero() {
		entry.EntryTime = time.Now()
	}
	if entry.Status == "" {
		entry.Status = "open"
	}

	if err := h.repo.CreateEntry(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// GetOpenEntries handles GET /api/trades/open
func (h *TradeHandler) GetOpenEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := h.repo.GetOpenEntries()
	if entries == nil {
		entries = make([]*domain.TradeEntry, 0)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// GetAllEntries handles GET /api/trades
func (h *TradeHandler) GetAllEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := h.repo.GetAllEntries()
	if entries == nil {
		entries = make([]*domain.TradeEntry, 0)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// CloseEntry handles PUT /api/trades/close?id={id}
func (h *TradeHandler) CloseEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.GetEntryByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	type closePayload struct {
		ExitPrice  *float64 `json:"exitPrice"`
		ExitTime   *string  `json:"exitTime"`
		ProfitLoss *float64 `json:"profitLoss"`
	}

	var payload closePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.ExitPrice == nil {
		http.Error(w, "Missing exitPrice", http.StatusBadRequest)
		return
	}

	updated := *existing
	updated.Status = "closed"
	updated.ExitPrice = payload.ExitPrice
	if payload.ExitTime != nil {
		if t, err := time.Parse(time.RFC3339, *payload.ExitTime); err == nil {
			updated.ExitTime = &t
		}
	}
	if updated.ExitTime == nil {
		now := time.Now()
		updated.ExitTime = &now
	}

	if payload.ProfitLoss != nil {
		updated.ProfitLoss = payload.ProfitLoss
	} else {
		diff := *updated.ExitPrice - updated.EntryPrice
		if !updated.IsLong {
			diff = -diff
		}
		if updated.Units > 0 {
			diff *= updated.Units
		}
		updated.ProfitLoss = &diff
	}

	if err := h.repo.UpdateEntry(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteEntry handles DELETE /api/trades/delete?id={id}
func (h *TradeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteEntry(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"deleted"}`))
}

// ClearAll handles DELETE /api/trades/clear
func (h *TradeHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.repo.ClearAll(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"cleared"}`))
}

// GetStats handles GET /api/trades/stats
func (h *TradeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := usecase.ComputeTradeStats(h.repo.GetAllEntries())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// Export handles GET /api/trades/export
func (h *TradeHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	export := usecase.BuildJournalExport(h.repo.GetAllEntries())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="trade-journal.json"`)
	json.NewEncoder(w).Encode(export)
}

// Import handles POST /api/trades/import
func (h *TradeHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var export domain.TradeJournalExport
	if err := json.NewDecoder(r.Body).Decode(&export); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	imported, err := usecase.ImportJournal(h.repo, export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"imported":%d}`, imported)
}
