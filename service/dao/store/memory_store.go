package store

import (
	"context"
	"sync"

	"github.com/viant/bidflow/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service that
// keeps insertion order. Saving an existing key replaces the record in place,
// so cached lists keep the order the backend returned them in.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keys        []K
	keySelector func(*T) K
	matcher     func(*T, []*dao.Parameter) bool
}

// Option customises a MemoryStore
type Option[K comparable, T any] func(s *MemoryStore[K, T])

// WithMatcher sets the predicate List applies to parameters.
func WithMatcher[K comparable, T any](matcher func(*T, []*dao.Parameter) bool) Option[K, T] {
	return func(s *MemoryStore[K, T]) {
		s.matcher = matcher
	}
}

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the entity key (usually the ID field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, options ...Option[K, T]) *MemoryStore[K, T] {
	ret := &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Save stores or replaces a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	var zero K
	if key == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.records[key] = v
	return nil
}

// Load returns a record by key or dao.ErrNotFound.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return nil
	}
	delete(s.records, key)
	for i, candidate := range s.keys {
		if candidate == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

// List returns stored records in insertion order, filtered by the matcher
// when parameters are supplied.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.keys))
	for _, key := range s.keys {
		v := s.records[key]
		if len(parameters) > 0 && s.matcher != nil && !s.matcher(v, parameters) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Replace atomically swaps all records for the supplied ones.
func (s *MemoryStore[K, T]) Replace(_ context.Context, values []*T) error {
	records := make(map[K]*T, len(values))
	keys := make([]K, 0, len(values))
	var zero K
	for _, v := range values {
		if v == nil {
			continue
		}
		key := s.keySelector(v)
		if key == zero {
			return dao.ErrInvalidID
		}
		if _, ok := records[key]; !ok {
			keys = append(keys, key)
		}
		records[key] = v
	}
	s.mu.Lock()
	s.records = records
	s.keys = keys
	s.mu.Unlock()
	return nil
}

// Update applies fn to the record under key while holding the write lock.
func (s *MemoryStore[K, T]) Update(_ context.Context, key K, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		return dao.ErrNotFound
	}
	fn(v)
	return nil
}

// Len returns number of records
func (s *MemoryStore[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

var _ dao.Service[string, struct{}] = (*MemoryStore[string, struct{}])(nil)
