package service

import (
	"context"
	"errors"
	"fmt"

	"travel_booking/internal/model"
	"travel_booking/internal/repository"
)

// ListingService manages the listing catalog
type ListingService interface {
	Create(ctx context.Context, req model.CreateListingRequest) (*model.Listing, error)
	List(ctx context.Context) ([]model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	Delete(ctx context.Context, id string) error
}

type listingService struct {
	repo  repository.ListingRepository
	cache CatalogCache
}

// NewListingService creates a new ListingService
func NewListingService(repo repository.ListingRepository, cc CatalogCache) ListingService {
	return &listingService{repo: repo, cache: cc}
}

func (s *listingService) Create(ctx context.Context, req model.CreateListingRequest) (*model.Listing, error) {
	listing := req.ToListing()
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing in repo: %w", err)
	}
	s.cache.invalidate(ctx, listingsCacheKey)
	return listing, nil
}

func (s *listingService) List(ctx context.Context) ([]model.Listing, error) {
	return cachedList(ctx, s.cache, listingsCacheKey, "listings", s.repo.FindAll)
}

func (s *listingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	listing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	s.cache.invalidate(ctx, listingsCacheKey)
	return nil
}
