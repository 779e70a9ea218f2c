package service

import (
	"slices"
	"sort"
	"strings"

	"gleaming-gallery/internal/domain"

	"github.com/shopspring/decimal"
)

// FilterProducts returns the catalog products matching every set criterion
// of filter, in catalog order.
func (s *commerceStore) FilterProducts(filter ProductFilter) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	products := []domain.Product{}
	for _, p := range s.products {
		if filter.CategorySlug != "" && p.Category.Slug != filter.CategorySlug {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if len(filter.Brands) > 0 && (p.Brand == "" || !slices.Contains(filter.Brands, p.Brand)) {
			continue
		}
		if filter.MinRating > 0 && p.Rating < filter.MinRating {
			continue
		}
		products = append(products, *p)
	}
	return products
}

func matchesSearch(p *domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), search))
}

// Brands returns the distinct non-empty brands, sorted.
func (s *commerceStore) Brands() []string {
	seen := make(map[string]struct{})
	brands := []string{}
	for _, p := range s.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// MaxPrice is the highest product price, or zero for an empty catalog.
func (s *commerceStore) MaxPrice() decimal.Decimal {
	highest := decimal.Zero
	for _, p := range s.products {
		if p.Price.GreaterThan(highest) {
			highest = p.Price
		}
	}
	return highest
}

// ProductRating averages the product's reviews. Without reviews it falls
// back to the rating stored on the product.
func (s *commerceStore) ProductRating(productID string) (float64, int) {
	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count > 0 {
		return float64(sum) / float64(count), count
	}

	if i := s.productIndex(productID); i >= 0 {
		return s.products[i].Rating, s.products[i].NumReviews
	}
	return 0, 0
}
