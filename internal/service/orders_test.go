package service

import (
	"context"
	"testing"

	"gleaming-gallery/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rabbitHole = domain.Address{
	ID:      "addr1",
	Street:  "123 Rabbit Hole",
	City:    "Fantasy Land",
	State:   "FL",
	ZipCode: "12345",
	Country: "USA",
}

func TestPlaceOrder(t *testing.T) {
	session := &mockSessionStore{}
	store, recorder := newTestStore(t, Dependencies{Session: session})
	ctx := context.Background()

	_, err := store.Login(ctx, "alice@example.com", "")
	require.NoError(t, err)
	store.AddToCart(ctx, productByID(t, store, "1"), 2)
	store.AddToCart(ctx, productByID(t, store, "2"), 1)

	order, err := store.PlaceOrder(ctx, rabbitHole)
	require.NoError(t, err)

	assert.Equal(t, "user1", order.UserID)
	assert.Equal(t, orderDate, order.OrderDate)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
	assert.True(t, decimal.RequireFromString("2949.48").Equal(order.TotalPrice))
	assert.True(t, order.ItemsTotal().Equal(order.TotalPrice))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Diamond Solitaire Necklace", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Empty(t, store.CartItems())
	assert.Empty(t, session.cart)

	orders := store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	last, _ := recorder.Last()
	assert.Equal(t, "Order placed! Thank you for your purchase. Order ID: "+order.ID, last.Message)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		store, recorder := newTestStore(t, Dependencies{})
		store.AddToCart(ctx, productByID(t, store, "1"), 1)

		_, err := store.PlaceOrder(ctx, rabbitHole)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, 1, store.CartCount())

		last, _ := recorder.Last()
		assert.Equal(t, "Cannot place order: please log in or add items to your cart.", last.Message)
	})

	t.Run("empty cart", func(t *testing.T) {
		store := loggedInStore(t)

		_, err := store.PlaceOrder(ctx, rabbitHole)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, store.Orders())
	})

	t.Run("incomplete address", func(t *testing.T) {
		store := loggedInStore(t)
		store.AddToCart(ctx, productByID(t, store, "1"), 1)

		_, err := store.PlaceOrder(ctx, domain.Address{Street: "123 Rabbit Hole"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, 1, store.CartCount())
	})
}

func TestOrders_ScopedToCurrentCustomer(t *testing.T) {
	store := loggedInStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, productByID(t, store, "1"), 1)
	aliceOrder, err := store.PlaceOrder(ctx, rabbitHole)
	require.NoError(t, err)
	store.Logout(ctx)

	assert.Empty(t, store.Orders())

	_, err = store.Register(ctx, "Bob", "bob@example.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, store.Orders())

	// lookup by id ignores the identity
	found, ok := store.GetOrderByID(aliceOrder.ID)
	require.True(t, ok)
	assert.Equal(t, "user1", found.UserID)

	_, ok = store.GetOrderByID("missing")
	assert.False(t, ok)
}

func TestUpdateOrderStatuses(t *testing.T) {
	store := loggedInStore(t)
	ctx := context.Background()
	store.AddToCart(ctx, productByID(t, store, "3"), 1)
	order, err := store.PlaceOrder(ctx, rabbitHole)
	require.NoError(t, err)

	require.NoError(t, store.UpdatePaymentStatus(order.ID, domain.PaymentStatusRefunded))
	require.NoError(t, store.UpdateOrderStatus(order.ID, domain.OrderStatusShipped))

	found, _ := store.GetOrderByID(order.ID)
	assert.Equal(t, domain.PaymentStatusRefunded, found.PaymentStatus)
	assert.Equal(t, domain.OrderStatusShipped, found.Status)

	assert.ErrorIs(t, store.UpdatePaymentStatus("missing", domain.PaymentStatusPending), ErrOrderNotFound)
	assert.ErrorIs(t, store.UpdateOrderStatus("missing", domain.OrderStatusDelivered), ErrOrderNotFound)
	assert.ErrorIs(t, store.UpdatePaymentStatus(order.ID, "Disputed"), ErrValidation)
	assert.ErrorIs(t, store.UpdateOrderStatus(order.ID, "Lost"), ErrValidation)
}

func TestRecordOrder(t *testing.T) {
	store, recorder := newTestStore(t, Dependencies{})

	order, err := store.RecordOrder(OrderRecordInput{
		ID:     "ord_1",
		UserID: "user9",
		Items: []OrderLineInput{
			{ProductID: "3", Quantity: 2},
			{ProductID: "2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_1", order.ID)
	assert.Equal(t, "user9", order.UserID)
	assert.Equal(t, orderDate, order.OrderDate)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Sapphire Engagement Ring", order.Items[0].ProductName)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("2499.99")))
	assert.True(t, decimal.RequireFromString("5349.48").Equal(order.TotalPrice), order.TotalPrice.String())

	found, ok := store.GetOrderByID("ord_1")
	require.True(t, ok)
	assert.Equal(t, order, found)

	last, _ := recorder.Last()
	assert.Equal(t, "Order ord_1 recorded for payment.", last.Message)

	// recording needs no customer session and leaves the cart alone
	assert.Zero(t, store.CartCount())
}

func TestRecordOrder_GeneratesID(t *testing.T) {
	store := NewCommerceStore(Dependencies{Catalog: newMockCatalog()}, nil, WithIDGenerator(func() string { return "generated" }))
	require.NoError(t, store.Init(context.Background()))

	order, err := store.RecordOrder(OrderRecordInput{Items: []OrderLineInput{{ProductID: "1", Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, "generated", order.ID)
}

func TestRecordOrder_Rejections(t *testing.T) {
	store, _ := newTestStore(t, Dependencies{})
	_, err := store.RecordOrder(OrderRecordInput{ID: "ord_1", Items: []OrderLineInput{{ProductID: "1", Quantity: 1}}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   OrderRecordInput
		wantErr error
	}{
		{"no items", OrderRecordInput{ID: "ord_2"}, ErrValidation},
		{"zero quantity", OrderRecordInput{Items: []OrderLineInput{{ProductID: "1"}}}, ErrValidation},
		{"missing product id", OrderRecordInput{Items: []OrderLineInput{{Quantity: 1}}}, ErrValidation},
		{"unknown product", OrderRecordInput{ID: "ord_3", Items: []OrderLineInput{{ProductID: "999", Quantity: 1}}}, ErrProductNotFound},
		{"duplicate id", OrderRecordInput{ID: "ord_1", Items: []OrderLineInput{{ProductID: "2", Quantity: 1}}}, ErrOrderExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.RecordOrder(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, ok := store.GetOrderByID("ord_3")
	assert.False(t, ok)
	original, _ := store.GetOrderByID("ord_1")
	assert.Equal(t, "1", original.Items[0].ProductID)
}

// Feature: gleaming-gallery-store, Property 28: Recorded orders are priced from the catalog
func TestProperty_RecordOrderUsesCatalogPrices(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("the total is the catalog price times the quantity for every line", prop.ForAll(
		func(productIDs []string, quantity int) bool {
			store, _ := newTestStore(t, Dependencies{})

			lines := make([]OrderLineInput, 0, len(productIDs))
			want := decimal.Zero
			for _, id := range productIDs {
				lines = append(lines, OrderLineInput{ProductID: id, Quantity: quantity})
				want = want.Add(productByID(t, store, id).Price.Mul(decimal.NewFromInt(int64(quantity))))
			}

			order, err := store.RecordOrder(OrderRecordInput{Items: lines})
			if err != nil {
				t.Logf("FAIL: record order: %v", err)
				return false
			}
			return order.TotalPrice.Equal(want) &&
				order.TotalPrice.Equal(order.ItemsTotal()) &&
				order.PaymentStatus == domain.PaymentStatusPending
		},
		gen.SliceOfN(3, gen.OneConstOf("1", "2", "3")),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: gleaming-gallery-store, Property 25: Orders are snapshots
func TestProperty_OrderSnapshotImmutable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("catalog and cart changes after placement leave the order unchanged", prop.ForAll(
		func(quantity int, newCents int64) bool {
			store := loggedInStore(t)
			ctx := context.Background()

			necklace := productByID(t, store, "1")
			store.AddToCart(ctx, necklace, quantity)
			placed, err := store.PlaceOrder(ctx, rabbitHole)
			if err != nil {
				t.Logf("FAIL: place order: %v", err)
				return false
			}

			necklace.Name = "Renamed Necklace"
			necklace.Price = decimal.New(newCents, -2)
			if err := store.UpdateProduct(necklace); err != nil {
				return false
			}
			store.AddToCart(ctx, necklace, 1)
			placed.Items[0].Quantity = 1000

			found, ok := store.GetOrderByID(placed.ID)
			if !ok {
				return false
			}
			item := found.Items[0]
			return item.ProductName == "Diamond Solitaire Necklace" &&
				item.Quantity == quantity &&
				item.UnitPrice.Equal(decimal.RequireFromString("1299.99")) &&
				found.TotalPrice.Equal(found.ItemsTotal())
		},
		gen.IntRange(1, 10),
		gen.Int64Range(1, 1000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
