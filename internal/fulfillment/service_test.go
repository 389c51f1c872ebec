package fulfillment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"northpole/internal/fulfillment/pow"
	"northpole/internal/fulfillment/santahash"
	peoplemodels "northpole/internal/people/models"
	peoplestore "northpole/internal/people/store"
	wishmodels "northpole/internal/wish/models"
	wishstore "northpole/internal/wish/store"
	dErrors "northpole/pkg/domain-errors"
)

type FulfillmentSuite struct {
	suite.Suite
	people *peoplestore.MemoryStore
	wishes *wishstore.MemoryStore
	svc    *Service
}

func TestFulfillmentSuite(t *testing.T) {
	suite.Run(t, new(FulfillmentSuite))
}

func (s *FulfillmentSuite) SetupTest() {
	s.people = peoplestore.NewMemory()
	s.wishes = wishstore.NewMemory()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := pow.NewEngine(logger, nil, pow.WithNonceMax(5_000_000))
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.svc = New(s.wishes, s.people, engine, logger, nil,
		WithClock(func() time.Time { return fixed }))
}

// registerPerson stores a beneficiary, optionally with an address.
func (s *FulfillmentSuite) registerPerson(location *peoplemodels.Location) peoplemodels.Person {
	person, err := s.people.Register(context.Background(), peoplemodels.Person{
		FirstName:          "Jane",
		LastName:           "Smith",
		DateOfBirth:        time.Date(1990, 7, 20, 0, 0, 0, 0, time.UTC),
		TimeOfRegistration: time.Now(),
		AddressLocation:    location,
		Behavior:           peoplemodels.BehaviorNice,
		Version:            1,
	})
	s.Require().NoError(err)
	return person
}

func (s *FulfillmentSuite) registerWish(beneficiaryID int, product string) wishmodels.Wish {
	wish := wishmodels.Wish{ID: "wish-1", ProductName: product, Quantity: 1, BeneficiaryID: beneficiaryID}
	s.Require().NoError(s.wishes.Register(context.Background(), wish))
	return wish
}

func (s *FulfillmentSuite) TestFulfillNearTheNorthPole() {
	// Latitude 89.999 puts the round trip at a fraction of a kilometer, so
	// the factor is 1 and the very first nonce wins.
	location, err := peoplemodels.NewLocation(89.999, 0)
	s.Require().NoError(err)
	person := s.registerPerson(&location)
	wish := s.registerWish(person.ID, "pony")

	result, err := s.svc.Fulfill(context.Background(), wish.ID)
	s.Require().NoError(err)

	s.Equal(0, result.Nonce)
	s.Len(result.Hash, santahash.HexLen)
	s.Equal(result.Hash, santahash.Sum(result.BlockHeader))
	s.Contains(result.BlockHeader, "2025-01-01T12:00:00")
	s.Contains(result.BlockHeader, "pony")
}

func (s *FulfillmentSuite) TestFulfillSolutionBeatsTarget() {
	location, err := peoplemodels.NewLocation(51.507351, -0.127758)
	s.Require().NoError(err)
	person := s.registerPerson(&location)
	wish := s.registerWish(person.ID, "teddy bear")

	result, err := s.svc.Fulfill(context.Background(), wish.ID)
	s.Require().NoError(err)
	s.Equal(result.Hash, santahash.Sum(result.BlockHeader))
}

func (s *FulfillmentSuite) TestFulfillUnknownWish() {
	_, err := s.svc.Fulfill(context.Background(), "ghost")
	s.True(dErrors.HasCode(err, dErrors.CodeWishNotFound))
}

func (s *FulfillmentSuite) TestFulfillUnknownBeneficiary() {
	wish := s.registerWish(999, "pony")
	_, err := s.svc.Fulfill(context.Background(), wish.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeBeneficiaryNotFound))
}

func (s *FulfillmentSuite) TestFulfillMissingAddress() {
	person := s.registerPerson(nil)
	wish := s.registerWish(person.ID, "pony")

	_, err := s.svc.Fulfill(context.Background(), wish.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeAddressMissing))
}

func (s *FulfillmentSuite) TestFulfillMutatesNothing() {
	location, err := peoplemodels.NewLocation(89.999, 0)
	s.Require().NoError(err)
	person := s.registerPerson(&location)
	wish := s.registerWish(person.ID, "pony")

	_, err = s.svc.Fulfill(context.Background(), wish.ID)
	s.Require().NoError(err)

	gotWish, err := s.wishes.Get(context.Background(), wish.ID)
	s.Require().NoError(err)
	s.Equal(wish, gotWish)

	gotPerson, err := s.people.Get(context.Background(), person.ID)
	s.Require().NoError(err)
	s.Equal(person, gotPerson)
}
