package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_booking/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates an OrderRepository on the orders collection
func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{coll: db.Collection(OrdersCollection)}
}

func (r *mongoOrderRepository) Create(ctx context.Context, o *model.Order) error {
	ensureID(&o.ID)
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var o model.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return &o, nil
}

func (r *mongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}
	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.OrderStatus, updatedAt time.Time) error {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": updatedAt}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
