package repository

import (
	"context"
	"errors"
	"fmt"

	"travel_booking/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// catalog holds the collection logic shared by listings and packages.
type catalog[T any] struct {
	coll *mongo.Collection
	kind string
}

func (c catalog[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.kind, err)
	}
	return nil
}

func (c catalog[T]) findAll(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %ss: %w", c.kind, err)
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %ss: %w", c.kind, err)
	}
	return docs, nil
}

func (c catalog[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s by ID: %w", c.kind, err)
	}
	return &doc, nil
}

func (c catalog[T]) delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.kind, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoListingRepository struct {
	catalog[model.Listing]
}

// NewMongoListingRepository creates a ListingRepository on the listings collection
func NewMongoListingRepository(db *mongo.Database) ListingRepository {
	return &mongoListingRepository{catalog[model.Listing]{coll: db.Collection(ListingsCollection), kind: "listing"}}
}

func (r *mongoListingRepository) Create(ctx context.Context, l *model.Listing) error {
	ensureID(&l.ID)
	return r.insert(ctx, l)
}

func (r *mongoListingRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	return r.findAll(ctx)
}

func (r *mongoListingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Listing, error) {
	return r.findByID(ctx, id)
}

func (r *mongoListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.delete(ctx, id)
}

type mongoPackageRepository struct {
	catalog[model.TourPackage]
}

// NewMongoPackageRepository creates a PackageRepository on the packages collection
func NewMongoPackageRepository(db *mongo.Database) PackageRepository {
	return &mongoPackageRepository{catalog[model.TourPackage]{coll: db.Collection(PackagesCollection), kind: "package"}}
}

func (r *mongoPackageRepository) Create(ctx context.Context, p *model.TourPackage) error {
	ensureID(&p.ID)
	return r.insert(ctx, p)
}

func (r *mongoPackageRepository) FindAll(ctx context.Context) ([]model.TourPackage, error) {
	return r.findAll(ctx)
}

func (r *mongoPackageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.TourPackage, error) {
	return r.findByID(ctx, id)
}

func (r *mongoPackageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.delete(ctx, id)
}
