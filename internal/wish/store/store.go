package store

import (
	"context"

	"northpole/internal/wish/models"
)

// Store persists wishes.
//
// Error contract:
//   - Get returns a wish_not_found domain error for unknown ids.
//   - Replace deletes the old wish and inserts the new one atomically, so
//     readers never observe the beneficiary with the old wish missing and the
//     new one absent.
//   - Infrastructure failures are wrapped as storage_failure.
type Store interface {
	Register(ctx context.Context, wish models.Wish) error
	Get(ctx context.Context, id string) (models.Wish, error)
	ListAll(ctx context.Context) ([]models.Wish, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID int) ([]models.Wish, error)
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, oldID string, wish models.Wish) error
}
