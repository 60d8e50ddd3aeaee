package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sitee-labs/sitee-backend/internal/users/domain"
)

// MemStore is an in-memory Store used in tests. Load hands out a deep
// copy so callers can mutate freely before saving back, mirroring the
// read-modify-write cycle of the file store.
type MemStore struct {
	mu    sync.Mutex
	users []domain.User
}

func NewMemStore(seed ...domain.User) *MemStore {
	m := &MemStore{}
	if len(seed) > 0 {
		m.users = clone(seed)
	}
	return m
}

func (m *MemStore) Load(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		return []domain.User{}, nil
	}
	return clone(m.users), nil
}

func (m *MemStore) Save(ctx context.Context, users []domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = clone(users)
	return nil
}

func clone(users []domain.User) []domain.User {
	data, _ := json.Marshal(users)
	var out []domain.User
	_ = json.Unmarshal(data, &out)
	if out == nil {
		out = []domain.User{}
	}
	return out
}
