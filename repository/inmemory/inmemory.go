package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
)

type record struct {
	value     string
	expiresAt time.Time
}

// Store is an in-process ShareStore, used in tests and for running
// without Redis. Expiry is checked lazily on Get against an
// injectable clock.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	now     func() time.Time
}

func NewShareStore() *Store {
	return &Store{records: make(map[string]record), now: time.Now}
}

// NewShareStoreWithClock builds a store whose notion of "now" comes
// from the given function.
func NewShareStoreWithClock(now func() time.Time) *Store {
	return &Store{records: make(map[string]record), now: now}
}

func (s *Store) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = record{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if !ok || !s.now().Before(rec.expiresAt) {
		return "", apperr.ErrNotFound
	}
	return rec.value, nil
}
