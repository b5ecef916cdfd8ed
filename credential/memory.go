package credential

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the credential in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load implements Store.
func (m *MemoryStore) Load(context.Context) (*Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred == nil {
		return nil, ErrNotFound
	}
	c := *m.cred
	return &c, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, c Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &c
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	return nil
}

// Token implements Source.
func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	return tokenFrom(ctx, m.Load, time.Now)
}
