package transport

import (
	"context"
	"errors"
	"net/http"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/middleware"
	"gleaming-gallery/internal/payment"
	"gleaming-gallery/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutItem is one product line of a checkout request. Prices are never
// taken from the client.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CheckoutRequest represents the checkout session request payload. An
// existing order is reused; otherwise items record a new one.
type CheckoutRequest struct {
	OrderID string         `json:"order_id,omitempty"`
	UserID  string         `json:"user_id,omitempty"`
	Items   []CheckoutItem `json:"items,omitempty" validate:"omitempty,dive"`
}

// WebhookEvent is the payment provider callback payload
type WebhookEvent struct {
	Type string `json:"type" validate:"required"`
}

// WebhookResponse acknowledges a callback
type WebhookResponse struct {
	Received      bool                 `json:"received"`
	OrderID       string               `json:"order_id,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
}

// StoreRunner serializes access to the commerce store.
type StoreRunner interface {
	Do(ctx context.Context, fn func(service.CommerceStore) error) error
}

// SessionIssuer opens checkout sessions for orders.
type SessionIssuer interface {
	Create(order *domain.Order) (*payment.CheckoutSession, error)
}

// PaymentHandler handles the payment provider boundary
type PaymentHandler struct {
	store    StoreRunner
	sessions SessionIssuer
	logger   *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(store StoreRunner, sessions SessionIssuer, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers the payment routes. webhookAuth verifies the
// callback signature and rateLimit is applied to every payment route after it.
func (h *PaymentHandler) RegisterRoutes(r chi.Router, webhookAuth, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/payments", func(r chi.Router) {
		r.With(rateLimit).Post("/checkout", h.CreateCheckout)

		r.Group(func(r chi.Router) {
			r.Use(webhookAuth)
			r.Use(rateLimit)
			r.Post("/webhook", h.Webhook)
		})
	})
}

// CreateCheckout opens a checkout session. A known order_id is reused so
// retries are idempotent; otherwise the items are priced from the catalog
// and recorded as a new order with payment pending.
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Checkout request rejected", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	if req.OrderID == "" && len(req.Items) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "order_id or items required")
		return
	}

	var order *domain.Order
	err := h.store.Do(r.Context(), func(store service.CommerceStore) error {
		if req.OrderID != "" {
			if found, ok := store.GetOrderByID(req.OrderID); ok {
				order = found
				return nil
			}
		}
		if len(req.Items) == 0 {
			return service.ErrOrderNotFound
		}

		lines := make([]service.OrderLineInput, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, service.OrderLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		recorded, err := store.RecordOrder(service.OrderRecordInput{
			ID:     req.OrderID,
			UserID: req.UserID,
			Items:  lines,
		})
		if err != nil {
			return err
		}
		order = recorded
		return nil
	})
	if err != nil {
		h.respondWithStoreError(w, err, "failed to load order")
		return
	}

	session, err := h.sessions.Create(order)
	if err != nil {
		if errors.Is(err, payment.ErrNoItems) {
			middleware.RespondWithError(w, http.StatusBadRequest, "order has no items")
			return
		}
		h.logger.Error("Failed to create checkout session", zap.String("order_id", order.ID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create checkout session")
		return
	}

	h.logger.Info("Checkout session created",
		zap.String("order_id", order.ID),
		zap.String("session_id", session.ID),
		zap.Int("line_items", len(session.LineItems)),
	)

	middleware.RespondWithJSON(w, http.StatusCreated, session)
}

// Webhook applies a payment provider event to the order named in the
// verified signature. Unknown event types are acknowledged and ignored.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	orderID, ok := middleware.GetOrderID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "missing signature")
		return
	}

	var event WebhookEvent
	if err := middleware.DecodeAndValidate(w, r, &event); err != nil {
		h.logger.Debug("Webhook payload rejected", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	status, known := payment.StatusForEvent(event.Type)
	if !known {
		h.logger.Debug("Ignoring payment event", zap.String("type", event.Type), zap.String("order_id", orderID))
		middleware.RespondWithJSON(w, http.StatusOK, WebhookResponse{Received: true})
		return
	}

	err := h.store.Do(r.Context(), func(store service.CommerceStore) error {
		return store.UpdatePaymentStatus(orderID, status)
	})
	if err != nil {
		h.respondWithStoreError(w, err, "error updating order status")
		return
	}

	eventID, _ := middleware.GetEventID(r.Context())
	h.logger.Info("Payment event applied",
		zap.String("type", event.Type),
		zap.String("event_id", eventID),
		zap.String("order_id", orderID),
		zap.String("payment_status", string(status)),
	)

	middleware.RespondWithJSON(w, http.StatusOK, WebhookResponse{
		Received:      true,
		OrderID:       orderID,
		PaymentStatus: status,
	})
}

func (h *PaymentHandler) respondWithStoreError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrOrderExists):
		middleware.RespondWithError(w, http.StatusConflict, "order already exists")
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrValidation):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "store is busy")
	default:
		h.logger.Error(message, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, message)
	}
}
