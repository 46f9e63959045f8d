package repository

import (
	"sync"

	"swingboard-backend/internal/domain"
)

// InMemorySignalRepository holds the result of the latest analysis
// pass. The whole list is replaced on every refresh cycle.
type InMemorySignalRepository struct {
	coins []domain.AnalyzedCoin
	mu    sync.RWMutex
}

func NewInMemorySignalRepository() *InMemorySignalRepository {
	return &InMemorySignalRepository{
		coins: []domain.AnalyzedCoin{},
	}
}

func (r *InMemorySignalRepository) SaveCoins(coins []domain.AnalyzedCoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coins = coins
}

func (r *InMemorySignalRepository) GetCoins() []domain.AnalyzedCoin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Copy so a caller holding the slice never races a refresh.
	result := make([]domain.AnalyzedCoin, len(r.coins))
	copy(result, r.coins)
	return result
}
