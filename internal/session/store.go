package session

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// StorageKey is the fixed key the principal record is persisted under.
// Stores namespace it by session id.
const StorageKey = "admin_user"

// ErrNoSession is returned by Store.Load when nothing valid is persisted for
// the session id.
var ErrNoSession = errors.New("no persisted session")

// Store persists the principal of one session between requests.
type Store interface {
	Load(ctx context.Context, sid string) (model.Principal, error)
	Save(ctx context.Context, sid string, p model.Principal) error
	Delete(ctx context.Context, sid string) error
}

func storageKey(sid string) string { return StorageKey + ":" + sid }

// MemoryStore keeps principals in process memory.  It serves tests and
// single-instance deployments without Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Principal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]model.Principal)}
}

func (m *MemoryStore) Load(_ context.Context, sid string) (model.Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[storageKey(sid)]
	if !ok {
		return model.Principal{}, ErrNoSession
	}
	return p, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, p model.Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[storageKey(sid)] = p
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, storageKey(sid))
	return nil
}
