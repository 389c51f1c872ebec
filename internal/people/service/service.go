// Package service implements beneficiary registration and maintenance on top
// of a people store.
package service

import (
	"context"
	"log/slog"
	"time"

	"northpole/internal/people/models"
	"northpole/internal/people/store"
	"northpole/internal/platform/metrics"
	dErrors "northpole/pkg/domain-errors"
)

// Service owns the person lifecycle: registration, optimistic-lock updates,
// and listing. It never mutates identity or registration timestamps.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a people service.
func New(st store.Store, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   st,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a new person. The identity comes from the store, the
// registration timestamp from the service clock, and the version always
// starts at 1.
func (s *Service) Register(ctx context.Context, person models.Person) (models.Person, error) {
	person.ID = 0
	person.TimeOfRegistration = s.now()
	person.Version = 1

	registered, err := s.store.Register(ctx, person)
	if err != nil {
		return models.Person{}, err
	}

	s.logger.InfoContext(ctx, "person registered",
		"person_id", registered.ID,
		"behavior", registered.Behavior,
	)
	if s.metrics != nil {
		s.metrics.PeopleRegistered.Inc()
	}
	return registered, nil
}

// Update applies an optimistic-lock gated update. The caller supplies the
// version token it last read; the write succeeds only if that token still
// matches the stored row, and the stored version advances by one.
func (s *Service) Update(ctx context.Context, person models.Person) error {
	person.Version++

	if err := s.store.Update(ctx, person); err != nil {
		if dErrors.HasCode(err, dErrors.CodeVersionConflict) {
			s.logger.WarnContext(ctx, "person update lost optimistic lock race",
				"person_id", person.ID,
				"version", person.Version-1,
			)
			if s.metrics != nil {
				s.metrics.VersionConflicts.Inc()
			}
		}
		return err
	}

	s.logger.InfoContext(ctx, "person updated",
		"person_id", person.ID,
		"version", person.Version,
	)
	if s.metrics != nil {
		s.metrics.PeopleUpdated.Inc()
	}
	return nil
}

// Get returns a single person by id.
func (s *Service) Get(ctx context.Context, id int) (models.Person, error) {
	return s.store.Get(ctx, id)
}

// ListAll returns every registered person.
func (s *Service) ListAll(ctx context.Context) ([]models.Person, error) {
	return s.store.ListAll(ctx)
}
