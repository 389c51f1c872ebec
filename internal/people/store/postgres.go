package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"northpole/internal/people/models"
	dErrors "northpole/pkg/domain-errors"
)

// PostgresStore persists people in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed people store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const personColumns = "id, first_name, last_name, date_of_birth, time_of_registration, latitude, longitude, behavior, version"

func (s *PostgresStore) Register(ctx context.Context, person models.Person) (models.Person, error) {
	const query = `
		INSERT INTO people (first_name, last_name, date_of_birth, time_of_registration, latitude, longitude, behavior, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + personColumns

	lat, lon := nullCoordinates(person.AddressLocation)
	row := s.db.QueryRowContext(ctx, query,
		person.FirstName,
		person.LastName,
		person.DateOfBirth,
		person.TimeOfRegistration,
		lat,
		lon,
		person.Behavior.Column(),
		person.Version,
	)

	registered, err := scanPerson(row)
	if err != nil {
		return models.Person{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "register person")
	}
	return registered, nil
}

// Update applies a single conditional UPDATE gated on the version token.
// Zero affected rows means another writer won the race (or the id is unknown).
func (s *PostgresStore) Update(ctx context.Context, person models.Person) error {
	const query = `
		UPDATE people
		SET first_name = $1,
		    last_name = $2,
		    date_of_birth = $3,
		    latitude = $4,
		    longitude = $5,
		    behavior = $6,
		    version = $7
		WHERE id = $8 AND version = $7 - 1`

	lat, lon := nullCoordinates(person.AddressLocation)
	result, err := s.db.ExecContext(ctx, query,
		person.FirstName,
		person.LastName,
		person.DateOfBirth,
		lat,
		lon,
		person.Behavior.Column(),
		person.Version,
		person.ID,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "update person")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "update person: rows affected")
	}
	if affected == 0 {
		return dErrors.New(dErrors.CodeVersionConflict,
			"update failed due to optimistic lock (version mismatch)")
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id int) (models.Person, error) {
	const query = "SELECT " + personColumns + " FROM people WHERE id = $1"

	person, err := scanPerson(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Person{}, dErrors.New(dErrors.CodeBeneficiaryNotFound,
			fmt.Sprintf("no person found with id: %d", id))
	}
	if err != nil {
		return models.Person{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "get person")
	}
	return person, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Person, error) {
	const query = "SELECT " + personColumns + " FROM people ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "list people")
	}
	defer rows.Close()

	people := make([]models.Person, 0)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "scan person")
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "list people")
	}
	return people, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (models.Person, error) {
	var (
		person   models.Person
		lat, lon sql.NullFloat64
		behavior string
	)
	err := row.Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.DateOfBirth,
		&person.TimeOfRegistration,
		&lat,
		&lon,
		&behavior,
		&person.Version,
	)
	if err != nil {
		return models.Person{}, err
	}

	parsed, err := models.ParseBehavior(behavior)
	if err != nil {
		return models.Person{}, err
	}
	person.Behavior = parsed

	if lat.Valid && lon.Valid {
		location, err := models.NewLocation(lat.Float64, lon.Float64)
		if err != nil {
			return models.Person{}, err
		}
		person.AddressLocation = &location
	}
	return person, nil
}

func nullCoordinates(location *models.Location) (sql.NullFloat64, sql.NullFloat64) {
	if location == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: location.Latitude, Valid: true},
		sql.NullFloat64{Float64: location.Longitude, Valid: true}
}
