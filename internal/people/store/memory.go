package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"northpole/internal/people/models"
	dErrors "northpole/pkg/domain-errors"
)

// MemoryStore stores people in memory for tests/dev.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int
	people map[int]models.Person
}

// NewMemory constructs an empty in-memory people store.
func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1, people: make(map[int]models.Person)}
}

func (s *MemoryStore) Register(_ context.Context, person models.Person) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person.ID = s.nextID
	s.nextID++
	s.people[person.ID] = person
	return person, nil
}

func (s *MemoryStore) Update(_ context.Context, person models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.people[person.ID]
	if !ok {
		return dErrors.New(dErrors.CodeBeneficiaryNotFound,
			fmt.Sprintf("no person found with id: %d", person.ID))
	}
	if stored.Version != person.Version-1 {
		return dErrors.New(dErrors.CodeVersionConflict,
			"update failed due to optimistic lock (version mismatch)")
	}

	// Identity and registration timestamp are immutable.
	person.TimeOfRegistration = stored.TimeOfRegistration
	s.people[person.ID] = person
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id int) (models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	person, ok := s.people[id]
	if !ok {
		return models.Person{}, dErrors.New(dErrors.CodeBeneficiaryNotFound,
			fmt.Sprintf("no person found with id: %d", id))
	}
	return person, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := make([]models.Person, 0, len(s.people))
	for _, person := range s.people {
		people = append(people, person)
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })
	return people, nil
}
