package main

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrBatchNotFound = errors.New("batch not found")

// Batch is a processed set of uploaded files.
type Batch struct {
	ID        string
	CreatedAt time.Time
	Result    *BatchResult
}

// BatchStore keeps batches in memory. It is safe for concurrent use.
type BatchStore struct {
	mu      sync.RWMutex
	batches map[string]*Batch
	now     func() time.Time
}

// NewBatchStore creates an empty store. Batches are stamped with time in loc, nil means local time.
func NewBatchStore(loc *time.Location) *BatchStore {
	now := time.Now
	if loc != nil {
		now = func() time.Time { return time.Now().In(loc) }
	}
	return &BatchStore{
		batches: make(map[string]*Batch),
		now:     now,
	}
}

// Save stores the result under a new ID.
func (s *BatchStore) Save(result *BatchResult) Batch {
	batch := &Batch{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
		Result:    result,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch
	return *batch
}

// Get returns the batch by ID. The result is shared and must not be modified.
func (s *BatchStore) Get(id string) (Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[id]
	if !ok {
		return Batch{}, ErrBatchNotFound
	}
	return *batch, nil
}

// List returns batches from the oldest.
func (s *BatchStore) List() []Batch {
	s.mu.RLock()
	result := make([]Batch, 0, len(s.batches))
	for _, batch := range s.batches {
		result = append(result, *batch)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes the batch.
func (s *BatchStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[id]; !ok {
		return ErrBatchNotFound
	}
	delete(s.batches, id)
	return nil
}
