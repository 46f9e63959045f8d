package repository

import (
	"fmt"
	"sort"
	"sync"

	"swingboard-backend/internal/domain"
)

// InMemoryTradeRepository stores journal entries in memory.
type InMemoryTradeRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.TradeEntry
}

func NewInMemoryTradeRepository() *InMemoryTradeRepository {
	return &InMemoryTradeRepository{
		entries: make(map[string]*domain.TradeEntry),
	}
}

func (r *InMemoryTradeRepository) CreateEntry(entry *domain.TradeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.ID]; exists {
		return fmt.Errorf("entry with ID %s already exists", entry.ID)
	}

	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *InMemoryTradeRepository) GetEntryByID(id string) (*domain.TradeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[id]
	if !exists {
		return nil, fmt.Errorf("entry not found")
	}
	cp := *entry
	return &cp, nil
}

func (r *InMemoryTradeRepository) GetOpenEntries() []*domain.TradeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	open := make([]*domain.TradeEntry, 0)
	for _, entry := range r.entries {
		if entry.Status == "open" {
			cp := *entry
			open = append(open, &cp)
		}
	}
	sortByEntryTime(open)
	return open
}

func (r *InMemoryTradeRepository) GetAllEntries() []*domain.TradeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.TradeEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		cp := *entry
		all = append(all, &cp)
	}
	sortByEntryTime(all)
	return all
}

func (r *InMemoryTradeRepository) UpdateEntry(entry *domain.TradeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.ID]; !exists {
		return fmt.Errorf("entry not found")
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *InMemoryTradeRepository) DeleteEntry(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return fmt.Errorf("entry not found")
	}
	delete(r.entries, id)
	return nil
}

func (r *InMemoryTradeRepository) ClearAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*domain.TradeEntry)
	return nil
}

func sortByEntryTime(entries []*domain.TradeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EntryTime.Equal(entries[j].EntryTime) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].EntryTime.After(entries[j].EntryTime)
	})
}
