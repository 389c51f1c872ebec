package store

import (
	"context"

	"northpole/internal/people/models"
)

// Store persists people.
//
// Error contract:
//   - Register assigns the identity, registration timestamp, and version 1.
//   - Update is a conditional write gated on the optimistic lock token: it
//     succeeds only when the stored version equals the new version minus one,
//     otherwise it returns a version_conflict domain error.
//   - Get returns a beneficiary_not_found domain error for unknown ids.
//   - Infrastructure failures are wrapped as storage_failure.
type Store interface {
	Register(ctx context.Context, person models.Person) (models.Person, error)
	Update(ctx context.Context, person models.Person) error
	Get(ctx context.Context, id int) (models.Person, error)
	ListAll(ctx context.Context) ([]models.Person, error)
}
