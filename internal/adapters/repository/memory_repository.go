package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var _ domain.KeyValueStore = (*InMemoryKVStore)(nil)

type InMemoryKVStore struct {
	store map[string]string

	mu sync.RWMutex
}

func NewInMemoryKVStore() *InMemoryKVStore {
	return &InMemoryKVStore{
		store: make(map[string]string),
	}
}

func (r *InMemoryKVStore) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (r *InMemoryKVStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = value
	return nil
}

func (r *InMemoryKVStore) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, key)
	return nil
}

