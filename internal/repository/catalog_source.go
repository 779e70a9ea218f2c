package repository

import (
	"context"

	"gleaming-gallery/internal/domain"
)

// CatalogSource reads the seed catalog from the repositories.
type CatalogSource struct {
	Categories CategoryRepository
	Products   ProductRepository
	Reviews    ReviewRepository
}

// NewCatalogSource creates a CatalogSource backed by db repositories.
func NewCatalogSource(categories CategoryRepository, products ProductRepository, reviews ReviewRepository) *CatalogSource {
	return &CatalogSource{
		Categories: categories,
		Products:   products,
		Reviews:    reviews,
	}
}

func (s *CatalogSource) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogSource) LoadProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.Products.List(ctx)
}

func (s *CatalogSource) LoadReviews(ctx context.Context) ([]*domain.Review, error) {
	return s.Reviews.List(ctx)
}
