package service

import (
	"fmt"
	"slices"

	"gleaming-gallery/internal/domain"

	"go.uber.org/zap"
)

// ToggleFavorite flips product in the current user's favorites and reports
// whether it is now a favorite.
func (s *commerceStore) ToggleFavorite(product domain.Product) (bool, error) {
	user, err := s.requireUser("Please log in to save favorites.")
	if err != nil {
		return false, err
	}

	if i := slices.Index(user.FavoriteProductIDs, product.ID); i >= 0 {
		user.FavoriteProductIDs = slices.Delete(slices.Clone(user.FavoriteProductIDs), i, i+1)
		s.logger.Debug("Favorite removed", zap.String("user_id", user.ID), zap.String("product_id", product.ID))
		s.succeed(fmt.Sprintf("%s removed from favorites", product.Name))
		return false, nil
	}

	user.FavoriteProductIDs = append(slices.Clone(user.FavoriteProductIDs), product.ID)
	s.logger.Debug("Favorite added", zap.String("user_id", user.ID), zap.String("product_id", product.ID))
	s.succeed(fmt.Sprintf("%s added to favorites", product.Name))
	return true, nil
}

// IsFavorite is false when nobody is logged in.
func (s *commerceStore) IsFavorite(productID string) bool {
	if s.currentUser == nil {
		return false
	}
	return slices.Contains(s.currentUser.FavoriteProductIDs, productID)
}

// FavoriteItems returns the catalog products the current user favorited,
// in catalog order.
func (s *commerceStore) FavoriteItems() []domain.Product {
	items := []domain.Product{}
	if s.currentUser == nil {
		return items
	}
	for _, p := range s.products {
		if slices.Contains(s.currentUser.FavoriteProductIDs, p.ID) {
			items = append(items, *p)
		}
	}
	return items
}
