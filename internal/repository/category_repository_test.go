package repository

import (
	"context"
	"errors"
	"testing"

	"gleaming-gallery/internal/domain"

	"github.com/google/uuid"
)

func TestCategoryRepository_ListSeeded(t *testing.T) {
	repo := NewCategoryRepository(testDB)

	categories, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(categories) < 6 {
		t.Fatalf("expected at least 6 seeded categories, got %d", len(categories))
	}

	want := []string{"necklaces", "earrings", "rings", "bracelets", "watches", "accessories"}
	for i, slug := range want {
		if categories[i].Slug != slug {
			t.Errorf("category %d: expected slug %q, got %q", i, slug, categories[i].Slug)
		}
	}
}

func TestCategoryRepository_CreateRejectsDuplicates(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	tests := []struct {
		name     string
		category domain.Category
	}{
		{"duplicate slug", domain.Category{ID: uuid.NewString(), Name: "Fresh Name", Slug: "rings"}},
		{"duplicate name ignoring case", domain.Category{ID: uuid.NewString(), Name: "RINGS", Slug: "fresh-slug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, &tt.category)
			if !errors.Is(err, ErrCategoryAlreadyExists) {
				t.Errorf("expected ErrCategoryAlreadyExists, got %v", err)
			}
		})
	}
}

func TestCategoryRepository_FindByID(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	category, err := repo.FindByID(ctx, "5")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if category.Name != "Watches" || category.Slug != "watches" {
		t.Errorf("unexpected category: %+v", category)
	}

	_, err = repo.FindByID(ctx, "missing")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCatalogSource_LoadsSeed(t *testing.T) {
	source := NewCatalogSource(
		NewCategoryRepository(testDB),
		NewProductRepository(testDB),
		NewReviewRepository(testDB),
	)
	ctx := context.Background()

	categories, err := source.LoadCategories(ctx)
	if err != nil || len(categories) < 6 {
		t.Fatalf("LoadCategories() = %d, %v", len(categories), err)
	}
	products, err := source.LoadProducts(ctx)
	if err != nil || len(products) < 6 {
		t.Fatalf("LoadProducts() = %d, %v", len(products), err)
	}
	reviews, err := source.LoadReviews(ctx)
	if err != nil {
		t.Fatalf("LoadReviews() error = %v", err)
	}

	perProduct := map[string]int{}
	for _, r := range reviews {
		perProduct[r.ProductID]++
	}
	if perProduct["1"] != 2 || perProduct["2"] != 1 {
		t.Errorf("unexpected seeded review counts: %v", perProduct)
	}
}
