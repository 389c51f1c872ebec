// Package service implements wish registration, listing, and replacement,
// enforcing the three-wishes-per-beneficiary invariant.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	peoplemodels "northpole/internal/people/models"
	"northpole/internal/platform/metrics"
	"northpole/internal/wish/models"
	"northpole/internal/wish/store"
	dErrors "northpole/pkg/domain-errors"
)

// PeopleResolver is the slice of the people store the wish service needs.
type PeopleResolver interface {
	Get(ctx context.Context, id int) (peoplemodels.Person, error)
}

// Service owns the wish lifecycle.
type Service struct {
	store   store.Store
	people  PeopleResolver
	logger  *slog.Logger
	metrics *metrics.Metrics
	newID   func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithIDGenerator overrides wish id generation, used by tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New constructs a wish service.
func New(st store.Store, people PeopleResolver, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   st,
		people:  people,
		logger:  logger,
		metrics: m,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a new wish for an existing beneficiary, assigning a fresh
// opaque id. A beneficiary holds at most three wishes at any time.
func (s *Service) Register(ctx context.Context, productName string, quantity, beneficiaryID int) (models.Wish, error) {
	if _, err := s.people.Get(ctx, beneficiaryID); err != nil {
		return models.Wish{}, err
	}

	existing, err := s.store.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return models.Wish{}, err
	}
	if len(existing) >= models.MaxWishesPerBeneficiary {
		if s.metrics != nil {
			s.metrics.WishLimitHits.Inc()
		}
		return models.Wish{}, dErrors.New(dErrors.CodeWishLimitExceeded,
			fmt.Sprintf("beneficiary %d already has 3 wishes, cannot add more", beneficiaryID))
	}

	wish := models.Wish{
		ID:            s.newID(),
		ProductName:   productName,
		Quantity:      quantity,
		BeneficiaryID: beneficiaryID,
	}
	if err := s.store.Register(ctx, wish); err != nil {
		return models.Wish{}, err
	}

	s.logger.InfoContext(ctx, "wish registered",
		"wish_id", wish.ID,
		"beneficiary_id", beneficiaryID,
		"product_name", productName,
	)
	if s.metrics != nil {
		s.metrics.WishesRegistered.Inc()
	}
	return wish, nil
}

// ListAll returns every registered wish.
func (s *Service) ListAll(ctx context.Context) ([]models.Wish, error) {
	return s.store.ListAll(ctx)
}

// Replacement describes a wish replacement request: the new wish plus the id
// of the wish it supersedes.
type Replacement struct {
	NewWish       models.Wish
	IDToReplace   string
	BeneficiaryID int
}

// Replace swaps one of a beneficiary's wishes for a new one. The replaced
// wish must belong to the given beneficiary. Delete and insert run in a
// single store transaction so the three-wish invariant holds for readers.
func (s *Service) Replace(ctx context.Context, repl Replacement) (deleted, created models.Wish, err error) {
	if _, err := s.people.Get(ctx, repl.BeneficiaryID); err != nil {
		return models.Wish{}, models.Wish{}, err
	}

	wishes, err := s.store.ListByBeneficiary(ctx, repl.BeneficiaryID)
	if err != nil {
		return models.Wish{}, models.Wish{}, err
	}
	var old *models.Wish
	for i := range wishes {
		if wishes[i].ID == repl.IDToReplace {
			old = &wishes[i]
			break
		}
	}
	if old == nil {
		return models.Wish{}, models.Wish{}, dErrors.New(dErrors.CodeWishNotFound,
			fmt.Sprintf("no wish found with id: %s for beneficiary id: %d", repl.IDToReplace, repl.BeneficiaryID))
	}

	newWish := repl.NewWish
	newWish.BeneficiaryID = repl.BeneficiaryID
	if err := s.store.Replace(ctx, repl.IDToReplace, newWish); err != nil {
		return models.Wish{}, models.Wish{}, err
	}

	s.logger.InfoContext(ctx, "wish replaced",
		"deleted_wish_id", old.ID,
		"new_wish_id", newWish.ID,
		"beneficiary_id", repl.BeneficiaryID,
	)
	if s.metrics != nil {
		s.metrics.WishesReplaced.Inc()
	}
	return *old, newWish, nil
}
