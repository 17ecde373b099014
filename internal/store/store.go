// Package store persists hosted games. Records carry the game state in its
// serialized JSON form, keyed by game id.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("record not found")

type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	WhitePlayer string    `json:"whitePlayer,omitempty"`
	BlackPlayer string    `json:"blackPlayer,omitempty"`
	State       string    `json:"state"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Store interface {
	Save(rec Record) error
	Load(id string) (Record, error)
	List() ([]Record, error)
	Delete(id string) error
}

// MemoryStore keeps records in a map. Saving a record older than the stored
// one is a no-op, so concurrent writers cannot roll a game back.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(rec Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.ID]; ok && existing.Version > rec.Version {
		return nil
	}
	rec.UpdatedAt = s.now()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Load(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns every record ordered by id.
func (s *MemoryStore) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}
