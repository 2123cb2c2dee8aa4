package booking

import (
	"context"
	"sync"

	"github.com/dkovacev/apartment-manager/internal/model"
)

// Store abstracts where an apartment's booking list lives.  The contract
// mirrors the original client behavior: the whole list is read on load and
// overwritten wholesale on every mutation.  There is no partial update and
// no cross-key transaction; the engine is single-actor per calendar.
type Store interface {
	// Load returns the booking list for an apartment.  A missing key is an
	// empty list, not an error.
	Load(ctx context.Context, apartmentID uint64) ([]model.Booking, error)
	// Save replaces the booking list for an apartment.
	Save(ctx context.Context, apartmentID uint64, bookings []model.Booking) error
}

// MemoryStore keeps booking lists in a process-local map.  It is the test
// backend and the stand-in for browser local storage.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[uint64][]model.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[uint64][]model.Booking)}
}

func (s *MemoryStore) Load(_ context.Context, apartmentID uint64) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.lists[apartmentID]
	out := make([]model.Booking, len(src))
	copy(out, src)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, apartmentID uint64, bookings []model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]model.Booking, len(bookings))
	copy(cp, bookings)
	s.lists[apartmentID] = cp
	return nil
}
