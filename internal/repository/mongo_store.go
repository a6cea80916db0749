package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, matching the mongoose defaults of the existing data set.
const (
	UsersCollection    = "users"
	ListingsCollection = "listings"
	PackagesCollection = "packages"
	OrdersCollection   = "orders"
)

// NewMongoStore builds a Store on a Mongo database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:    NewMongoUserRepository(db),
		Listings: NewMongoListingRepository(db),
		Packages: NewMongoPackageRepository(db),
		Orders:   NewMongoOrderRepository(db),
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// email index is what decides concurrent signups for the same address.
// Indexes keep the server's default names (email_1, ...) so that the ones an
// existing deployment already has are matched instead of conflicting.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	_, err = db.Collection(OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create orders user index: %w", err)
	}
	return nil
}
