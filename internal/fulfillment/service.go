// Package fulfillment orchestrates the wish fulfillment pipeline: wish and
// beneficiary resolution, distance to the North Pole, difficulty derivation,
// and the proof-of-work search.
package fulfillment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"northpole/internal/fulfillment/difficulty"
	"northpole/internal/fulfillment/geo"
	"northpole/internal/fulfillment/pow"
	peoplemodels "northpole/internal/people/models"
	"northpole/internal/platform/metrics"
	wishmodels "northpole/internal/wish/models"
	dErrors "northpole/pkg/domain-errors"
)

// WishResolver is the slice of the wish store the service needs.
type WishResolver interface {
	Get(ctx context.Context, id string) (wishmodels.Wish, error)
}

// PeopleResolver is the slice of the people store the service needs.
type PeopleResolver interface {
	Get(ctx context.Context, id int) (peoplemodels.Person, error)
}

// Result is a completed proof-of-work solution for a wish.
type Result struct {
	Hash        string
	BlockHeader string
	Nonce       int
	Elapsed     time.Duration
}

// Service runs the fulfillment pipeline. It reads but never mutates state.
type Service struct {
	wishes  WishResolver
	people  PeopleResolver
	engine  *pow.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock, used by tests to pin block headers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a fulfillment service.
func New(wishes WishResolver, people PeopleResolver, engine *pow.Engine, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		wishes:  wishes,
		people:  people,
		engine:  engine,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fulfill resolves the wish and its beneficiary, derives the proof-of-work
// target from twice the beneficiary's distance to the North Pole, and runs
// the nonce search. Stage order is strict and data flows one way.
func (s *Service) Fulfill(ctx context.Context, wishID string) (Result, error) {
	if s.metrics != nil {
		s.metrics.FulfillmentsStarted.Inc()
	}

	result, err := s.fulfill(ctx, wishID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.FulfillmentsFailed.WithLabelValues(failureReason(err)).Inc()
		}
		return Result{}, err
	}
	if s.metrics != nil {
		s.metrics.FulfillmentsSucceeded.Inc()
	}
	return result, nil
}

func (s *Service) fulfill(ctx context.Context, wishID string) (Result, error) {
	wish, err := s.wishes.Get(ctx, wishID)
	if err != nil {
		return Result{}, err
	}

	person, err := s.people.Get(ctx, wish.BeneficiaryID)
	if err != nil {
		return Result{}, err
	}
	if person.AddressLocation == nil {
		return Result{}, dErrors.New(dErrors.CodeAddressMissing,
			fmt.Sprintf("no address location found for person with id: %d", person.ID))
	}

	oneWayKm, err := geo.DistanceToNorthPoleKm(person.AddressLocation.Latitude, person.AddressLocation.Longitude)
	if err != nil {
		return Result{}, err
	}
	roundTripKm := 2 * oneWayKm
	target := difficulty.TargetFor(roundTripKm)

	s.logger.InfoContext(ctx, "starting proof of work search",
		"wish_id", wish.ID,
		"beneficiary_id", person.ID,
		"product_name", wish.ProductName,
		"round_trip_km", roundTripKm,
		"target", fmt.Sprintf("%064x", target),
	)

	timestamp := s.now().Format(peoplemodels.LocalDateTimeLayout)
	solution, err := s.engine.FindNonce(ctx, timestamp, target, wish.ProductName)
	if err != nil {
		return Result{}, err
	}

	s.logger.InfoContext(ctx, "found valid santa hash",
		"wish_id", wish.ID,
		"nonce", solution.Nonce,
		"hash", solution.Hash,
		"elapsed_ms", solution.Elapsed.Milliseconds(),
	)
	return Result{
		Hash:        solution.Hash,
		BlockHeader: solution.BlockHeader,
		Nonce:       solution.Nonce,
		Elapsed:     solution.Elapsed,
	}, nil
}

// failureReason flattens an error into a low-cardinality metric label.
func failureReason(err error) string {
	for _, code := range []dErrors.Code{
		dErrors.CodeWishNotFound,
		dErrors.CodeBeneficiaryNotFound,
		dErrors.CodeAddressMissing,
		dErrors.CodePoWExhausted,
		dErrors.CodePoWCancelled,
		dErrors.CodeStorageFailure,
	} {
		if dErrors.HasCode(err, code) {
			return string(code)
		}
	}
	return string(dErrors.CodeInternal)
}
