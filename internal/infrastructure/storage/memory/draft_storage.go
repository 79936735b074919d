package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
)

type draftValue struct {
	value     string
	expiresAt time.Time
}

// DraftStore keeps drafts per client in process memory.
type DraftStore struct {
	mu      sync.RWMutex
	clients map[string]map[string]draftValue
	now     func() time.Time
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		clients: make(map[string]map[string]draftValue),
		now:     time.Now,
	}
}

// ForClient scopes the store to one client id.
func (s *DraftStore) ForClient(clientID string) lineup.Storage {
	return &clientDraft{store: s, clientID: clientID}
}

type clientDraft struct {
	store    *DraftStore
	clientID string
}

func (c *clientDraft) Get(_ context.Context, key string) (string, bool, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	item, ok := c.store.clients[c.clientID][key]
	if !ok || !item.expiresAt.After(c.store.now()) {
		return "", false, nil
	}
	return item.value, true, nil
}

func (c *clientDraft) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	values, ok := c.store.clients[c.clientID]
	if !ok {
		values = make(map[string]draftValue)
		c.store.clients[c.clientID] = values
	}
	values[key] = draftValue{value: value, expiresAt: c.store.now().Add(ttl)}
	return nil
}

func (c *clientDraft) Delete(_ context.Context, key string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	values, ok := c.store.clients[c.clientID]
	if !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(c.store.clients, c.clientID)
	}
	return nil
}

// NewDraftStorage is a single-client storage, handy in tests.
func NewDraftStorage() lineup.Storage {
	return NewDraftStore().ForClient("local")
}
