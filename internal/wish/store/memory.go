package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"northpole/internal/wish/models"
	dErrors "northpole/pkg/domain-errors"
)

// MemoryStore stores wishes in memory for tests/dev.
type MemoryStore struct {
	mu     sync.RWMutex
	wishes map[string]models.Wish
}

// NewMemory constructs an empty in-memory wish store.
func NewMemory() *MemoryStore {
	return &MemoryStore{wishes: make(map[string]models.Wish)}
}

func (s *MemoryStore) Register(_ context.Context, wish models.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishes[wish.ID] = wish
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wish, ok := s.wishes[id]
	if !ok {
		return models.Wish{}, dErrors.New(dErrors.CodeWishNotFound,
			fmt.Sprintf("no wish found with id: %s", id))
	}
	return wish, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wishes := make([]models.Wish, 0, len(s.wishes))
	for _, wish := range s.wishes {
		wishes = append(wishes, wish)
	}
	sortWishes(wishes)
	return wishes, nil
}

func (s *MemoryStore) ListByBeneficiary(_ context.Context, beneficiaryID int) ([]models.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wishes := make([]models.Wish, 0)
	for _, wish := range s.wishes {
		if wish.BeneficiaryID == beneficiaryID {
			wishes = append(wishes, wish)
		}
	}
	sortWishes(wishes)
	return wishes, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wishes, id)
	return nil
}

// Replace swaps the old wish for the new one under a single lock acquisition,
// so no reader observes the intermediate state.
func (s *MemoryStore) Replace(_ context.Context, oldID string, wish models.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wishes[oldID]; !ok {
		return dErrors.New(dErrors.CodeWishNotFound,
			fmt.Sprintf("no wish found with id: %s", oldID))
	}
	delete(s.wishes, oldID)
	s.wishes[wish.ID] = wish
	return nil
}

func sortWishes(wishes []models.Wish) {
	sort.Slice(wishes, func(i, j int) bool { return wishes[i].ID < wishes[j].ID })
}
