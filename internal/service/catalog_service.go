package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/repository"
)

// CatalogService manages the service offering catalog.
type CatalogService struct {
	offerings repository.OfferingRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(offerings repository.OfferingRepository) *CatalogService {
	return &CatalogService{offerings: offerings}
}

// OfferingInput describes catalog create/update payloads.
type OfferingInput struct {
	Name            string
	Description     string
	PriceCents      int64
	DurationMinutes int
}

// ListPublic returns active offerings for the marketing pages.
func (s *CatalogService) ListPublic(ctx context.Context) ([]domain.ServiceOffering, error) {
	return s.offerings.List(ctx, true)
}

// ListAll returns the full catalog for the admin surface.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.ServiceOffering, error) {
	return s.offerings.List(ctx, false)
}

// GetBySlug fetches a single offering for its detail page.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.ServiceOffering, error) {
	return s.offerings.GetBySlug(ctx, slug)
}

// Create adds an offering to the catalog.
func (s *CatalogService) Create(ctx context.Context, input OfferingInput) (*domain.ServiceOffering, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if input.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}
	if input.DurationMinutes <= 0 {
		return nil, errors.New("duration must be positive")
	}

	offering := &domain.ServiceOffering{
		Name:            name,
		Slug:            slugify(name),
		Description:     strings.TrimSpace(input.Description),
		PriceCents:      input.PriceCents,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
	}
	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

// Update replaces the mutable fields of an offering.
func (s *CatalogService) Update(ctx context.Context, id string, input OfferingInput) (*domain.ServiceOffering, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		offering.Name = name
		offering.Slug = slugify(name)
	}
	if input.Description != "" {
		offering.Description = strings.TrimSpace(input.Description)
	}
	if input.PriceCents > 0 {
		offering.PriceCents = input.PriceCents
	}
	if input.DurationMinutes > 0 {
		offering.DurationMinutes = input.DurationMinutes
	}

	if err := s.offerings.Update(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

// Deactivate removes an offering from the public catalog without
// touching existing appointments that reference it.
func (s *CatalogService) Deactivate(ctx context.Context, id string) error {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	offering.Active = false
	return s.offerings.Update(ctx, offering)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
