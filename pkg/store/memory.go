package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/permnet/pkg/errors"
)

// MemoryStore keeps records in a map. Records are copied on the way in and
// out, so callers may mutate what they pass or receive.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := prepare(rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return errors.New(errors.ErrCodeInvalidID, "network %s already exists", rec.ID)
	}
	s.records[rec.ID] = clone(*rec)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateNetworkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	out := clone(rec)
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateNetworkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) Close() error { return nil }

func clone(r Record) Record {
	r.Network.Permutation = slices.Clone(r.Network.Permutation)
	m := make([][]int8, len(r.Network.Matrix))
	for i, row := range r.Network.Matrix {
		m[i] = slices.Clone(row)
	}
	r.Network.Matrix = m
	return r
}

var _ Store = (*MemoryStore)(nil)
