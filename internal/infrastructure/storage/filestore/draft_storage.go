package filestore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/c2FmZQ/storage"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
)

const draftsDir = "drafts"

type draftEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type draftFile struct {
	Entries map[string]draftEntry `json:"entries"`
}

// DraftStore persists each client's draft as one data file under dir.
type DraftStore struct {
	storage *storage.Storage
	mu      sync.Mutex
	now     func() time.Time
}

func NewDraftStore(dir string) (*DraftStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, draftsDir), 0o700); err != nil {
		return nil, fmt.Errorf("create draft dir %s: %w", dir, err)
	}
	return &DraftStore{
		storage: storage.New(dir, nil),
		now:     time.Now,
	}, nil
}

func (s *DraftStore) ForClient(clientID string) lineup.Storage {
	return &clientDraft{
		store:    s,
		filename: filepath.Join(draftsDir, url.PathEscape(clientID)+".json"),
	}
}

func (s *DraftStore) read(filename string) (draftFile, error) {
	var f draftFile
	if err := s.storage.ReadDataFile(filename, &f); err != nil {
		if os.IsNotExist(err) {
			return draftFile{Entries: map[string]draftEntry{}}, nil
		}
		return draftFile{}, fmt.Errorf("storage.ReadDataFile: %w", err)
	}
	if f.Entries == nil {
		f.Entries = map[string]draftEntry{}
	}
	return f, nil
}

func (s *DraftStore) write(filename string, f draftFile) error {
	if err := s.storage.SaveDataFile(filename, f); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

type clientDraft struct {
	store    *DraftStore
	filename string
}

func (c *clientDraft) Get(_ context.Context, key string) (string, bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	f, err := c.store.read(c.filename)
	if err != nil {
		return "", false, err
	}
	entry, ok := f.Entries[key]
	if !ok || !entry.ExpiresAt.After(c.store.now()) {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (c *clientDraft) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	f, err := c.store.read(c.filename)
	if err != nil {
		return err
	}
	now := c.store.now()
	for k, entry := range f.Entries {
		if !entry.ExpiresAt.After(now) {
			delete(f.Entries, k)
		}
	}
	f.Entries[key] = draftEntry{Value: value, ExpiresAt: now.Add(ttl).UTC()}
	return c.store.write(c.filename, f)
}

func (c *clientDraft) Delete(_ context.Context, key string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	f, err := c.store.read(c.filename)
	if err != nil {
		return err
	}
	if _, ok := f.Entries[key]; !ok {
		return nil
	}
	delete(f.Entries, key)
	return c.store.write(c.filename, f)
}
