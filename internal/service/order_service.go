package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_booking/internal/metrics"
	"travel_booking/internal/model"
	"travel_booking/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService defines operations for orders
type OrderService interface {
	// Create places an order owned by userID. The owner never comes from the request body.
	Create(ctx context.Context, userID primitive.ObjectID, req model.CreateOrderRequest) (*model.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
	now  func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *orderService) Create(ctx context.Context, userID primitive.ObjectID, req model.CreateOrderRequest) (*model.Order, error) {
	if req.Type == "" || req.Amount <= 0 {
		return nil, model.NewValidationError("Type and amount are required to create an order.")
	}
	booking, err := req.Booking()
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		UserID:    userID,
		Booking:   booking,
		Amount:    float64(req.Amount),
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repo: %w", err)
	}

	metrics.ObserveOrder(string(order.Type()))
	zerolog.Ctx(ctx).Info().
		Str("order_id", order.ID.Hex()).
		Str("type", string(order.Type())).
		Float64("amount", order.Amount).
		Msg("order placed")
	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus applies an admin status change. Only pending orders can move,
// and only to Completed or Cancelled.
func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusTransition
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, oid, order.Status, status, now); err != nil {
		// The order changed status between the read and the write.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	metrics.ObserveOrderStatusChange(string(status))
	order.Status = status
	order.UpdatedAt = now
	return order, nil
}
