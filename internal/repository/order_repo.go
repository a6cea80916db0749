package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_booking/internal/model"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository defines operations for order data
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	// FindByUser returns the user's orders, newest first
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)
	// UpdateStatus moves an order from one status to another. It returns
	// ErrNotFound when no order with that id is currently in status from.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.OrderStatus, updatedAt time.Time) error
}

type orderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new Postgres-backed OrderRepository
func NewOrderRepository(db DBTX) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, type, listing_id, listing_name, package_id, package_name, amount, status, check_in_date, created_at, updated_at`

// Create inserts a new order into the database
func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	ensureID(&o.ID)
	rec := o.Record()
	sql := `INSERT INTO orders (` + orderColumns + `)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, sql,
		rec.ID.Hex(), rec.UserID.Hex(), rec.Type,
		hexOrNil(rec.ListingID), textOrNil(rec.ListingName),
		hexOrNil(rec.PackageID), textOrNil(rec.PackageName),
		rec.Amount, rec.Status, rec.CheckInDate, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByID retrieves an order by its ID
func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id.Hex()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

// FindByUser retrieves orders placed by a specific user
func (r *orderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.OrderStatus, updatedAt time.Time) error {
	sql := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	cmdTag, err := r.db.Exec(ctx, sql, to, updatedAt, id.Hex(), from)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		rec                      model.OrderRecord
		id, userID               string
		listingID, packageID     *string
		listingName, packageName *string
	)
	err := row.Scan(
		&id, &userID, &rec.Type, &listingID, &listingName, &packageID, &packageName,
		&rec.Amount, &rec.Status, &rec.CheckInDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.ID, err = parseObjectID(id); err != nil {
		return nil, err
	}
	if rec.UserID, err = parseObjectID(userID); err != nil {
		return nil, err
	}
	if listingID != nil {
		oid, err := parseObjectID(*listingID)
		if err != nil {
			return nil, err
		}
		rec.ListingID = &oid
	}
	if packageID != nil {
		oid, err := parseObjectID(*packageID)
		if err != nil {
			return nil, err
		}
		rec.PackageID = &oid
	}
	if listingName != nil {
		rec.ListingName = *listingName
	}
	if packageName != nil {
		rec.PackageName = *packageName
	}
	return rec.Order()
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	s := id.Hex()
	return &s
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
