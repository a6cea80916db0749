package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"travel_booking/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDB is the shared state behind the in-memory repositories.
type memoryDB struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]model.User
	emails   map[string]primitive.ObjectID
	listings []model.Listing
	packages []model.TourPackage
	orders   map[primitive.ObjectID]model.Order
}

// NewMemoryStore builds a Store that keeps everything in process memory.
// Data is lost on restart; it backs local development and tests.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:  make(map[primitive.ObjectID]model.User),
		emails: make(map[string]primitive.ObjectID),
		orders: make(map[primitive.ObjectID]model.Order),
	}
	return &Store{
		Users:    &memoryUserRepository{db},
		Listings: &memoryListingRepository{db},
		Packages: &memoryPackageRepository{db},
		Orders:   &memoryOrderRepository{db},
	}
}

type memoryUserRepository struct{ db *memoryDB }

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, taken := r.db.emails[user.Email]; taken {
		return ErrDuplicateKey
	}
	ensureID(&user.ID)
	r.db.users[user.ID] = *user
	r.db.emails[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	id, ok := r.db.emails[email]
	if !ok {
		return nil, nil
	}
	user := r.db.users[id]
	return &user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type memoryListingRepository struct{ db *memoryDB }

func (r *memoryListingRepository) Create(_ context.Context, l *model.Listing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&l.ID)
	r.db.listings = append(r.db.listings, *l)
	return nil
}

func (r *memoryListingRepository) FindAll(_ context.Context) ([]model.Listing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return append([]model.Listing{}, r.db.listings...), nil
}

func (r *memoryListingRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Listing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, l := range r.db.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *memoryListingRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, l := range r.db.listings {
		if l.ID == id {
			r.db.listings = append(r.db.listings[:i], r.db.listings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memoryPackageRepository struct{ db *memoryDB }

func (r *memoryPackageRepository) Create(_ context.Context, p *model.TourPackage) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&p.ID)
	stored := *p
	stored.Places = append([]string(nil), p.Places...)
	r.db.packages = append(r.db.packages, stored)
	return nil
}

func (r *memoryPackageRepository) FindAll(_ context.Context) ([]model.TourPackage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return append([]model.TourPackage{}, r.db.packages...), nil
}

func (r *memoryPackageRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.TourPackage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.packages {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memoryPackageRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, p := range r.db.packages {
		if p.ID == id {
			r.db.packages = append(r.db.packages[:i], r.db.packages[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memoryOrderRepository struct{ db *memoryDB }

func (r *memoryOrderRepository) Create(_ context.Context, o *model.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ensureID(&o.ID)
	r.db.orders[o.ID] = *o
	return nil
}

func (r *memoryOrderRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	o, ok := r.db.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memoryOrderRepository) FindByUser(_ context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	orders := []model.Order{}
	for _, o := range r.db.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID.Hex() > orders[j].ID.Hex()
	})
	return orders, nil
}

func (r *memoryOrderRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to model.OrderStatus, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, ok := r.db.orders[id]
	if !ok || o.Status != from {
		return ErrNotFound
	}
	o.Status = to
	o.UpdatedAt = updatedAt
	r.db.orders[id] = o
	return nil
}
