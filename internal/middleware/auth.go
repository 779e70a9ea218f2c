package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"gleaming-gallery/internal/payment"

	"go.uber.org/zap"
)

type contextKey string

const (
	OrderIDKey contextKey = "order_id"
	EventIDKey contextKey = "event_id"
)

// WebhookVerifier validates a webhook signature against the raw body.
type WebhookVerifier interface {
	VerifyWebhook(signature string, body []byte) (*payment.WebhookClaims, error)
}

// WebhookSignatureAuth authenticates payment callbacks by the signature
// header, which must cover the exact request body. The signed order and
// event ids are put on the request context and the body is replayed to
// the next handler.
func WebhookSignatureAuth(verifier WebhookVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signature := r.Header.Get(payment.SignatureHeader)
			if signature == "" {
				logger.Debug("Missing webhook signature")
				RespondWithError(w, http.StatusUnauthorized, "missing webhook signature")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if err != nil {
				logger.Debug("Failed to read webhook body", zap.Error(err))
				RespondWithError(w, http.StatusBadRequest, "malformed request body")
				return
			}

			claims, err := verifier.VerifyWebhook(signature, body)
			if err != nil {
				logger.Warn("Webhook signature rejected",
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				RespondWithError(w, http.StatusUnauthorized, "invalid webhook signature")
				return
			}

			ctx := context.WithValue(r.Context(), OrderIDKey, claims.OrderID)
			ctx = context.WithValue(ctx, EventIDKey, claims.ID)

			logger.Debug("Payment callback authenticated",
				zap.String("order_id", claims.OrderID),
				zap.String("event_id", claims.ID),
			)

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOrderID extracts the authenticated order id from the request context
func GetOrderID(ctx context.Context) (string, bool) {
	orderID, ok := ctx.Value(OrderIDKey).(string)
	return orderID, ok
}

// GetEventID extracts the signed event id from the request context
func GetEventID(ctx context.Context) (string, bool) {
	eventID, ok := ctx.Value(EventIDKey).(string)
	return eventID, ok
}
