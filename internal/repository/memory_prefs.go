package repository

import (
	"context"
	"sync"
)

// MemoryPrefsRepo is an in-memory PrefsRepo for tests and ephemeral runs.
type MemoryPrefsRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryPrefsRepo() *MemoryPrefsRepo {
	return &MemoryPrefsRepo{data: make(map[string]string)}
}

func (r *MemoryPrefsRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *MemoryPrefsRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *MemoryPrefsRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
