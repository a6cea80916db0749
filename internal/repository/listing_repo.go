package repository

import (
	"context"
	"errors"
	"fmt"

	"travel_booking/internal/model"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingRepository defines operations for listing data
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindAll(ctx context.Context) ([]model.Listing, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Listing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type listingRepository struct {
	db DBTX
}

// NewListingRepository creates a new Postgres-backed ListingRepository
func NewListingRepository(db DBTX) ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, name, description, image, state, district, price, contact`

func (r *listingRepository) Create(ctx context.Context, l *model.Listing) error {
	ensureID(&l.ID)
	sql := `INSERT INTO listings (` + listingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, sql, l.ID.Hex(), l.Name, l.Description, l.Image, l.State, l.District, l.Price, l.Contact)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// FindAll returns every listing in insertion order
func (r *listingRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []model.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, *l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing rows: %w", err)
	}
	return listings, nil
}

func (r *listingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id.Hex()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find listing by ID: %w", err)
	}
	return l, nil
}

func (r *listingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*model.Listing, error) {
	var (
		l  model.Listing
		id string
	)
	if err := row.Scan(&id, &l.Name, &l.Description, &l.Image, &l.State, &l.District, &l.Price, &l.Contact); err != nil {
		return nil, err
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	l.ID = oid
	return &l, nil
}
