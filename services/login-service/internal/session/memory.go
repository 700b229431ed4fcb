package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrMissingID = errors.New("session record has no id")

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return ErrMissingID
	}

	c := record.clone()

	s.mu.Lock()
	s.records[c.ID] = c
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	record, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	now := s.now()
	if !record.expiredAt(now) {
		return record.clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A Put may have replaced the record since it was read.
	current, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	if current != record && !current.expiredAt(now) {
		return current.clone(), nil
	}

	delete(s.records, id)
	return nil, nil
}

// Len returns the number of records held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
