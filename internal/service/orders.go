package service

import (
	"context"
	"fmt"

	"gleaming-gallery/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceOrder snapshots the cart into a new order for the current customer
// and clears the cart. The order starts Processing with payment Completed.
func (s *commerceStore) PlaceOrder(ctx context.Context, shippingAddress domain.Address) (*domain.Order, error) {
	const rejected = "Cannot place order: please log in or add items to your cart."

	user, err := s.requireUser(rejected)
	if err != nil {
		return nil, err
	}
	if len(s.cart) == 0 {
		return nil, s.fail(ErrEmptyCart, rejected)
	}
	if err := validateInput(addressInputOf(shippingAddress)); err != nil {
		return nil, s.fail(err, "Cannot place order: shipping address is incomplete.")
	}

	items := make([]domain.OrderItem, 0, len(s.cart))
	for _, item := range s.cart {
		items = append(items, domain.OrderItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			ImageURL:    item.ImageURL,
		})
	}

	order := &domain.Order{
		ID:              s.newID(),
		UserID:          user.ID,
		Items:           items,
		TotalPrice:      s.CartTotal(),
		ShippingAddress: shippingAddress,
		OrderDate:       s.now().UTC(),
		Status:          domain.OrderStatusProcessing,
		PaymentStatus:   domain.PaymentStatusCompleted,
	}
	s.orders = append(s.orders, order)
	s.ClearCart(ctx)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", user.ID),
		zap.Int("items", len(items)),
		zap.String("total", order.TotalPrice.StringFixed(2)),
	)
	s.succeed(fmt.Sprintf("Order placed! Thank you for your purchase. Order ID: %s", order.ID))

	return order.Clone(), nil
}

// RecordOrder adopts an order placed by another storefront session so the
// payment boundary can settle it. Lines are priced from the current
// catalog, never from the caller. The order starts Processing with payment
// Pending.
func (s *commerceStore) RecordOrder(input OrderRecordInput) (*domain.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, s.fail(err, "Order not recorded: invalid items.")
	}
	if input.ID != "" && s.findOrder(input.ID) != nil {
		return nil, s.fail(ErrOrderExists, "Order not recorded: order already exists.")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, line := range input.Items {
		i := s.productIndex(line.ProductID)
		if i < 0 {
			return nil, s.fail(fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID), "Order not recorded: product not found.")
		}
		p := s.products[i]

		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			ImageURL:    p.ImageURL,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	id := input.ID
	if id == "" {
		id = s.newID()
	}

	order := &domain.Order{
		ID:            id,
		UserID:        input.UserID,
		Items:         items,
		TotalPrice:    total,
		OrderDate:     s.now().UTC(),
		Status:        domain.OrderStatusProcessing,
		PaymentStatus: domain.PaymentStatusPending,
	}
	s.orders = append(s.orders, order)

	s.logger.Info("Order recorded",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int("items", len(items)),
		zap.String("total", total.StringFixed(2)),
	)
	s.succeed(fmt.Sprintf("Order %s recorded for payment.", order.ID))

	return order.Clone(), nil
}

// Orders returns the current customer's orders in placement order.
func (s *commerceStore) Orders() []domain.Order {
	orders := []domain.Order{}
	if s.currentUser == nil {
		return orders
	}
	for _, o := range s.orders {
		if o.UserID == s.currentUser.ID {
			orders = append(orders, *o.Clone())
		}
	}
	return orders
}

// GetOrderByID looks up any order regardless of the current identity.
func (s *commerceStore) GetOrderByID(orderID string) (*domain.Order, bool) {
	o := s.findOrder(orderID)
	if o == nil {
		return nil, false
	}
	return o.Clone(), true
}

// UpdatePaymentStatus records a payment outcome reported by the payment
// provider.
func (s *commerceStore) UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error {
	if !status.Valid() {
		return s.fail(fmt.Errorf("%w: unknown payment status %q", ErrValidation, status), "Payment status not updated: unknown status.")
	}
	o := s.findOrder(orderID)
	if o == nil {
		return s.fail(ErrOrderNotFound, "Payment status not updated: order not found.")
	}

	o.PaymentStatus = status

	s.logger.Info("Payment status updated", zap.String("order_id", orderID), zap.String("payment_status", string(status)))
	s.succeed(fmt.Sprintf("Payment for order %s is %s.", orderID, status))

	return nil
}

// UpdateOrderStatus records a fulfillment transition.
func (s *commerceStore) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return s.fail(fmt.Errorf("%w: unknown order status %q", ErrValidation, status), "Order status not updated: unknown status.")
	}
	o := s.findOrder(orderID)
	if o == nil {
		return s.fail(ErrOrderNotFound, "Order status not updated: order not found.")
	}

	o.Status = status

	s.logger.Info("Order status updated", zap.String("order_id", orderID), zap.String("status", string(status)))
	s.succeed(fmt.Sprintf("Order %s is %s.", orderID, status))

	return nil
}

func (s *commerceStore) findOrder(orderID string) *domain.Order {
	for _, o := range s.orders {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}
