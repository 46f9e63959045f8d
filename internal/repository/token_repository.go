package repository

import (
	"sync"

	"swingboard-backend/internal/domain"
)

// InMemoryTokenRepository keeps registered push targets in memory.
// Devices re-register on app start, so losing tokens across a restart
// only delays alerts until the next registration.
type InMemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]domain.DeviceToken
}

func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{
		tokens: make(map[string]domain.DeviceToken),
	}
}

func (r *InMemoryTokenRepository) Register(token domain.DeviceToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
}

func (r *InMemoryTokenRepository) Unregister(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// ActiveTokens returns the raw token strings for an FCM multicast.
func (r *InMemoryTokenRepository) ActiveTokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tokens := make([]string, 0, len(r.tokens))
	for token := range r.tokens {
		tokens = append(tokens, token)
	}
	return tokens
}

func (r *InMemoryTokenRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
