package service

import (
	"context"
	"fmt"
	"slices"

	"gleaming-gallery/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddToCart increments the row for product by quantity, inserting the row
// if the product is not in the cart yet. A quantity below one counts as one.
// Stock is not checked.
func (s *commerceStore) AddToCart(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if i := s.cartIndex(product.ID); i >= 0 {
		s.cart[i].Quantity += quantity
	} else {
		s.cart = append(s.cart, domain.CartItem{Product: product, Quantity: quantity})
	}

	s.logger.Debug("Added to cart",
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity),
	)

	s.saveCart(ctx)
	s.succeed(fmt.Sprintf("%s added to cart", product.Name))
}

// RemoveFromCart deletes the row for productID if present.
func (s *commerceStore) RemoveFromCart(ctx context.Context, productID string) {
	s.cart = slices.DeleteFunc(s.cart, func(item domain.CartItem) bool {
		return item.ID == productID
	})

	s.logger.Debug("Removed from cart", zap.String("product_id", productID))

	s.saveCart(ctx)
	s.succeed("Item removed from cart")
}

// UpdateQuantity sets the quantity of a row. Zero or less removes the row.
func (s *commerceStore) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	if i := s.cartIndex(productID); i >= 0 {
		s.cart[i].Quantity = quantity
	}

	s.logger.Debug("Cart quantity updated",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)

	s.saveCart(ctx)
	s.succeed("Cart updated")
}

// ClearCart empties the cart without notifying.
func (s *commerceStore) ClearCart(ctx context.Context) {
	s.cart = []domain.CartItem{}
	s.saveCart(ctx)
}

func (s *commerceStore) CartItems() []domain.CartItem {
	return slices.Clone(s.cart)
}

// CartTotal is the sum of price * quantity over the cart rows.
func (s *commerceStore) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartCount is the number of units in the cart.
func (s *commerceStore) CartCount() int {
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

func (s *commerceStore) cartIndex(productID string) int {
	return slices.IndexFunc(s.cart, func(item domain.CartItem) bool {
		return item.ID == productID
	})
}
