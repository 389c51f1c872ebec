package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"northpole/internal/people/models"
	dErrors "northpole/pkg/domain-errors"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemoryStoreSuite) newPerson() models.Person {
	location, err := models.NewLocation(51.507351, -0.127758)
	s.Require().NoError(err)
	return models.Person{
		FirstName:          "Jane",
		LastName:           "Smith",
		DateOfBirth:        time.Date(1990, 7, 20, 0, 0, 0, 0, time.UTC),
		TimeOfRegistration: time.Now(),
		AddressLocation:    &location,
		Behavior:           models.BehaviorNice,
		Version:            1,
	}
}

func (s *MemoryStoreSuite) TestRegisterAssignsSequentialIDs() {
	first, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)
	second, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)

	s.Equal(1, first.ID)
	s.Equal(2, second.ID)
	s.Equal(1, first.Version)
}

func (s *MemoryStoreSuite) TestGetNotFound() {
	_, err := s.store.Get(context.Background(), 42)
	s.True(dErrors.HasCode(err, dErrors.CodeBeneficiaryNotFound))
}

func (s *MemoryStoreSuite) TestUpdateIncrementsVersion() {
	registered, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)

	registered.FirstName = "Janet"
	registered.Version = 2
	s.Require().NoError(s.store.Update(context.Background(), registered))

	got, err := s.store.Get(context.Background(), registered.ID)
	s.Require().NoError(err)
	s.Equal("Janet", got.FirstName)
	s.Equal(2, got.Version)
}

func (s *MemoryStoreSuite) TestUpdateVersionMismatch() {
	registered, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)

	registered.Version = 3 // stored version is 1, expected token is 2
	err = s.store.Update(context.Background(), registered)
	s.True(dErrors.HasCode(err, dErrors.CodeVersionConflict))
}

func (s *MemoryStoreSuite) TestUpdatePreservesRegistrationTimestamp() {
	registered, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)

	updated := registered
	updated.TimeOfRegistration = updated.TimeOfRegistration.Add(time.Hour)
	updated.Version = 2
	s.Require().NoError(s.store.Update(context.Background(), updated))

	got, err := s.store.Get(context.Background(), registered.ID)
	s.Require().NoError(err)
	s.Equal(registered.TimeOfRegistration, got.TimeOfRegistration)
}

func (s *MemoryStoreSuite) TestConcurrentUpdatesSingleWinner() {
	registered, err := s.store.Register(context.Background(), s.newPerson())
	s.Require().NoError(err)

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			update := registered
			update.Version = 2
			results <- s.store.Update(context.Background(), update)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			s.True(dErrors.HasCode(err, dErrors.CodeVersionConflict))
		}
	}
	s.Equal(1, wins)
}

func (s *MemoryStoreSuite) TestListAllOrderedByID() {
	for i := 0; i < 3; i++ {
		_, err := s.store.Register(context.Background(), s.newPerson())
		s.Require().NoError(err)
	}

	people, err := s.store.ListAll(context.Background())
	s.Require().NoError(err)
	s.Len(people, 3)
	s.Equal([]int{1, 2, 3}, []int{people[0].ID, people[1].ID, people[2].ID})
}
