package repository

import (
	"context"
	"sync"

	"sidrabill/internal/model"
)

// In-memory repository implementations. Used as the storage substitute in
// unit tests and for running the server without Redis (APP_ENV=development
// with no REDIS_URL reachable is still a hard failure; these are wired
// explicitly where wanted).

type MemoryMenuRepository struct {
	mu    sync.Mutex
	items []model.MenuItem
}

func NewMemoryMenuRepository() *MemoryMenuRepository { return &MemoryMenuRepository{} }

func (r *MemoryMenuRepository) Load(_ context.Context) ([]model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryMenuRepository) Save(_ context.Context, items []model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]model.MenuItem, len(items))
	copy(r.items, items)
	return nil
}

var _ MenuRepository = (*MemoryMenuRepository)(nil)

type MemoryHistoryRepository struct {
	mu      sync.Mutex
	records []model.SavedReceipt
	// SaveCount helps tests assert that every mutation hits the store.
	SaveCount int
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository { return &MemoryHistoryRepository{} }

func (r *MemoryHistoryRepository) Load(_ context.Context) ([]model.SavedReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.SavedReceipt, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryHistoryRepository) Save(_ context.Context, records []model.SavedReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make([]model.SavedReceipt, len(records))
	copy(r.records, records)
	r.SaveCount++
	return nil
}

var _ HistoryRepository = (*MemoryHistoryRepository)(nil)
