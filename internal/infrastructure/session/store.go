package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/platform/cache"
)

const keyPrefix = "session:"

// State is the part of the builder that never reaches draft storage.
type State struct {
	Presentation lineup.Presentation
	Editor       lineup.EditorState
}

// Store keeps transient builder state per client id with a sliding TTL.
type Store struct {
	cache *cache.Store
}

func NewStore(ttl time.Duration) *Store {
	return &Store{cache: cache.NewStore(ttl)}
}

// NewClientID mints an opaque id for the client cookie.
func NewClientID() string {
	return uuid.NewString()
}

// ValidClientID rejects ids this service did not mint.
func ValidClientID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

func (s *Store) Load(ctx context.Context, clientID string) (State, bool) {
	value, ok := s.cache.Get(ctx, keyPrefix+clientID)
	if !ok {
		return State{}, false
	}
	state, ok := value.(State)
	return state, ok
}

func (s *Store) Save(ctx context.Context, clientID string, state State) {
	s.cache.Set(ctx, keyPrefix+clientID, state)
}

func (s *Store) Delete(ctx context.Context, clientID string) {
	s.cache.Delete(ctx, keyPrefix+clientID)
}

func (s *Store) Len() int {
	return s.cache.Len()
}

// RunJanitor drops expired sessions until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	s.cache.RunJanitor(ctx, interval)
}
