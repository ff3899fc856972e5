package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/wordsphere/pkg/errors"
)

// DefaultMaxRecords bounds a MemoryStore unless WithMaxRecords says otherwise.
const DefaultMaxRecords = 1000

// MemoryStore is an in-process Store holding the newest records only.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	max     int
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMaxRecords sets how many records are kept. n <= 0 keeps the default.
func WithMaxRecords(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.max = n
		}
	}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{records: make(map[string]Record), max: DefaultMaxRecords}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores rec, replacing any record with the same ID. When the store is
// full the oldest record is evicted.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	for len(s.records) > s.max {
		delete(s.records, s.oldest())
	}
	return nil
}

// oldest returns the ID of the record Recent would list last.
func (s *MemoryStore) oldest() string {
	var last *Record
	for _, rec := range s.records {
		if last == nil || newer(*last, rec) < 0 {
			last = &rec
		}
	}
	return last.ID
}

// newer orders records newest first, breaking ties by ID.
func newer(a, b Record) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Get returns the record with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "analysis %s not found", id)
	}
	return &rec, nil
}

// Recent returns up to n records, newest first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, newer)
	return out[:min(n, len(out))], nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
