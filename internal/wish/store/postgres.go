package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"northpole/internal/wish/models"
	dErrors "northpole/pkg/domain-errors"
)

// PostgresStore persists wishes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed wish store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Register(ctx context.Context, wish models.Wish) error {
	const query = `
		INSERT INTO wishes (id, product_name, quantity, beneficiary_id)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, wish.ID, wish.ProductName, wish.Quantity, wish.BeneficiaryID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "register wish")
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (models.Wish, error) {
	const query = `
		SELECT id, product_name, quantity, beneficiary_id
		FROM wishes WHERE id = $1`

	var wish models.Wish
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&wish.ID, &wish.ProductName, &wish.Quantity, &wish.BeneficiaryID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Wish{}, dErrors.New(dErrors.CodeWishNotFound,
			fmt.Sprintf("no wish found with id: %s", id))
	}
	if err != nil {
		return models.Wish{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "get wish")
	}
	return wish, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Wish, error) {
	const query = `
		SELECT id, product_name, quantity, beneficiary_id
		FROM wishes ORDER BY id`

	return s.queryWishes(ctx, query)
}

func (s *PostgresStore) ListByBeneficiary(ctx context.Context, beneficiaryID int) ([]models.Wish, error) {
	const query = `
		SELECT id, product_name, quantity, beneficiary_id
		FROM wishes WHERE beneficiary_id = $1 ORDER BY id`

	return s.queryWishes(ctx, query, beneficiaryID)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM wishes WHERE id = $1"

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "delete wish")
	}
	return nil
}

// Replace runs the delete and the insert in a single transaction so the
// beneficiary is never observed with the old wish gone and the new one absent,
// and the three-wish invariant holds under concurrent inserts.
func (s *PostgresStore) Replace(ctx context.Context, oldID string, wish models.Wish) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "replace wish: begin")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, "DELETE FROM wishes WHERE id = $1", oldID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "replace wish: delete")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "replace wish: rows affected")
	}
	if affected == 0 {
		return dErrors.New(dErrors.CodeWishNotFound,
			fmt.Sprintf("no wish found with id: %s", oldID))
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO wishes (id, product_name, quantity, beneficiary_id) VALUES ($1, $2, $3, $4)",
		wish.ID, wish.ProductName, wish.Quantity, wish.BeneficiaryID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "replace wish: insert")
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "replace wish: commit")
	}
	return nil
}

func (s *PostgresStore) queryWishes(ctx context.Context, query string, args ...any) ([]models.Wish, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "list wishes")
	}
	defer rows.Close()

	wishes := make([]models.Wish, 0)
	for rows.Next() {
		var wish models.Wish
		if err := rows.Scan(&wish.ID, &wish.ProductName, &wish.Quantity, &wish.BeneficiaryID); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "scan wish")
		}
		wishes = append(wishes, wish)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "list wishes")
	}
	return wishes, nil
}
