package service

import (
	"context"
	"errors"
	"fmt"

	"travel_booking/internal/model"
	"travel_booking/internal/repository"
)

// PackageService manages the tour package catalog
type PackageService interface {
	Create(ctx context.Context, req model.CreatePackageRequest) (*model.TourPackage, error)
	List(ctx context.Context) ([]model.TourPackage, error)
	Get(ctx context.Context, id string) (*model.TourPackage, error)
	Delete(ctx context.Context, id string) error
}

type packageService struct {
	repo  repository.PackageRepository
	cache CatalogCache
}

// NewPackageService creates a new PackageService
func NewPackageService(repo repository.PackageRepository, cc CatalogCache) PackageService {
	return &packageService{repo: repo, cache: cc}
}

func (s *packageService) Create(ctx context.Context, req model.CreatePackageRequest) (*model.TourPackage, error) {
	if len(req.Places) == 0 {
		return nil, model.NewValidationError("Please fill in all required fields.")
	}
	pkg := req.ToPackage()
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package in repo: %w", err)
	}
	s.cache.invalidate(ctx, packagesCacheKey)
	return pkg, nil
}

func (s *packageService) List(ctx context.Context) ([]model.TourPackage, error) {
	return cachedList(ctx, s.cache, packagesCacheKey, "packages", s.repo.FindAll)
}

func (s *packageService) Get(ctx context.Context, id string) (*model.TourPackage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	pkg, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func (s *packageService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to delete package: %w", err)
	}
	s.cache.invalidate(ctx, packagesCacheKey)
	return nil
}
