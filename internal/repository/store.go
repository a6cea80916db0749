package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned by mutations whose target does not exist.
	// Lookups return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// DBTX is the subset of *pgxpool.Pool the Postgres repositories use. pgxmock
// pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store groups the repositories of one backend.
type Store struct {
	Users    UserRepository
	Listings ListingRepository
	Packages PackageRepository
	Orders   OrderRepository

	ping func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// NewPostgresStore builds a Store on a pgx pool.
func NewPostgresStore(db DBTX) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Listings: NewListingRepository(db),
		Packages: NewPackageRepository(db),
		Orders:   NewOrderRepository(db),
		ping:     db.Ping,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("stored id %q is not an ObjectID: %w", hex, err)
	}
	return id, nil
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}
