package repository

import (
	"context"
	"errors"
	"fmt"

	"travel_booking/internal/model"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageRepository defines operations for tour package data
type PackageRepository interface {
	Create(ctx context.Context, pkg *model.TourPackage) error
	FindAll(ctx context.Context) ([]model.TourPackage, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.TourPackage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type packageRepository struct {
	db DBTX
}

// NewPackageRepository creates a new Postgres-backed PackageRepository
func NewPackageRepository(db DBTX) PackageRepository {
	return &packageRepository{db: db}
}

const packageColumns = `id, name, image, description, days, places_count, places, cost, phone`

func (r *packageRepository) Create(ctx context.Context, p *model.TourPackage) error {
	ensureID(&p.ID)
	sql := `INSERT INTO packages (` + packageColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, sql, p.ID.Hex(), p.Name, p.Image, p.Description, p.Days, p.PlacesCount, p.Places, p.Cost, p.Phone)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]model.TourPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	packages := []model.TourPackage{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		packages = append(packages, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package rows: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.TourPackage, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id.Hex()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find package by ID: %w", err)
	}
	return p, nil
}

func (r *packageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPackage(row pgx.Row) (*model.TourPackage, error) {
	var (
		p  model.TourPackage
		id string
	)
	if err := row.Scan(&id, &p.Name, &p.Image, &p.Description, &p.Days, &p.PlacesCount, &p.Places, &p.Cost, &p.Phone); err != nil {
		return nil, err
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	p.ID = oid
	return &p, nil
}
