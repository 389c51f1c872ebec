package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"northpole/internal/wish/models"
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

func (s *MemoryStoreSuite) TestRegisterAndGet() {
	wish := models.Wish{ID: "w-1", ProductName: "pony", Quantity: 1, BeneficiaryID: 7}
	s.Require().NoError(s.store.Register(context.Background(), wish))

	got, err := s.store.Get(context.Background(), "w-1")
	s.Require().NoError(err)
	s.Equal(wish, got)
}

func (s *MemoryStoreSuite) TestGetNotFound() {
	_, err := s.store.Get(context.Background(), "missing")
	s.True(dErrors.HasCode(err, dErrors.CodeWishNotFound))
}

func (s *MemoryStoreSuite) TestListByBeneficiary() {
	s.Require().NoError(s.store.Register(context.Background(), models.Wish{ID: "a", ProductName: "pony", BeneficiaryID: 1}))
	s.Require().NoError(s.store.Register(context.Background(), models.Wish{ID: "b", ProductName: "sled", BeneficiaryID: 2}))
	s.Require().NoError(s.store.Register(context.Background(), models.Wish{ID: "c", ProductName: "drum", BeneficiaryID: 1}))

	wishes, err := s.store.ListByBeneficiary(context.Background(), 1)
	s.Require().NoError(err)
	s.Len(wishes, 2)
	s.Equal("a", wishes[0].ID)
	s.Equal("c", wishes[1].ID)
}

func (s *MemoryStoreSuite) TestDeleteIsPermanent() {
	s.Require().NoError(s.store.Register(context.Background(), models.Wish{ID: "a", ProductName: "pony", BeneficiaryID: 1}))
	s.Require().NoError(s.store.Delete(context.Background(), "a"))

	_, err := s.store.Get(context.Background(), "a")
	s.True(dErrors.HasCode(err, dErrors.CodeWishNotFound))
}

func (s *MemoryStoreSuite) TestReplaceSwapsAtomically() {
	s.Require().NoError(s.store.Register(context.Background(), models.Wish{ID: "old", ProductName: "pony", BeneficiaryID: 1}))

	err := s.store.Replace(context.Background(), "old", models.Wish{ID: "new", ProductName: "sled", BeneficiaryID: 1})
	s.Require().NoError(err)

	_, err = s.store.Get(context.Background(), "old")
	s.True(dErrors.HasCode(err, dErrors.CodeWishNotFound))

	got, err := s.store.Get(context.Background(), "new")
	s.Require().NoError(err)
	s.Equal("sled", got.ProductName)
}

func (s *MemoryStoreSuite) TestReplaceUnknownWish() {
	err := s.store.Replace(context.Background(), "ghost", models.Wish{ID: "new", ProductName: "sled", BeneficiaryID: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeWishNotFound))
}
