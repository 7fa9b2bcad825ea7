package dummykv

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/darasa/core"
)

type record struct {
	value     []byte
	expiresAt time.Time
}

// Store is an in-memory core.KVStore for tests. GetErr/SetErr force failures
// to exercise the swallow-and-log paths.
type Store struct {
	mu      sync.RWMutex
	records map[string]record

	GetErr error
	SetErr error
}

var _ core.KVStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{records: make(map[string]record)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	if s.GetErr != nil {
		return nil, time.Time{}, false, s.GetErr
	}
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, false, nil
	}
	return rec.value, rec.expiresAt, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	s.records[key] = record{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.records = make(map[string]record)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error { return nil }

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
