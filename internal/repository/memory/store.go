// Package memory implements the repositories on an in-process collection.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"catalog-backend/internal/domain"

	"github.com/google/uuid"
)

// store keeps records in insertion order, which is the tie order searches rely on.
// Each method is one critical section; callers composing several calls
// (guard then insert) are not atomic. Ids are held in canonical UUID form and
// the natural key is unique, matching the relational schema.
type store[T any] struct {
	mu     sync.RWMutex
	items  []T
	idOf   func(T) string
	keyOf  func(T) string
	entity string
	// conflict is returned when a write would duplicate a natural key.
	conflict error
}

func newStore[T any](entity string, idOf, keyOf func(T) string, conflict error) *store[T] {
	return &store[T]{idOf: idOf, keyOf: keyOf, entity: entity, conflict: conflict}
}

// canonicalID parses id as a UUID in any accepted textual form and returns
// its lowercase hyphenated form.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func (s *store[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s not found using ID %s", domain.ErrNotFound, s.entity, id)
}

// indexOf finds the record with the canonical id.
func (s *store[T]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it T) bool { return s.idOf(it) == id })
}

// lookup resolves a caller-supplied id to its index.
func (s *store[T]) lookup(id string) (int, error) {
	key, ok := canonicalID(id)
	if !ok {
		return -1, s.notFound(id)
	}
	i := s.indexOf(key)
	if i < 0 {
		return -1, s.notFound(id)
	}
	return i, nil
}

// keyTaken reports whether a record other than the one at skip holds key.
func (s *store[T]) keyTaken(key string, skip int) bool {
	for i, it := range s.items {
		if i != skip && s.keyOf(it) == key {
			return true
		}
	}
	return false
}

// insert stores e, whose id must already be canonical.
func (s *store[T]) insert(e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idOf(e)
	if s.indexOf(id) >= 0 {
		return fmt.Errorf("%w: %s with ID %s already exists", domain.ErrConflict, s.entity, id)
	}
	if s.keyTaken(s.keyOf(e), -1) {
		return s.conflict
	}
	s.items = append(s.items, e)
	return nil
}

func (s *store[T]) get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.items[i], nil
}

// first returns the earliest inserted record matching match.
func (s *store[T]) first(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.items, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// replace swaps the record with id for merge(stored), keeping its position.
// merge must keep the stored id.
func (s *store[T]) replace(id string, merge func(stored T) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	next := merge(s.items[i])
	if s.keyTaken(s.keyOf(next), i) {
		var zero T
		return zero, s.conflict
	}
	s.items[i] = next
	return next, nil
}

func (s *store[T]) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *store[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// pick returns the records with the given ids, in the order of ids, skipping
// unknown and repeated ids. Ids naming the same UUID count as repeats.
func (s *store[T]) pick(ids []string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key, ok := canonicalID(id)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if i := s.indexOf(key); i >= 0 {
			out = append(out, s.items[i])
		}
	}
	return out
}
