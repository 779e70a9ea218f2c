// Package payment creates checkout sessions for orders and verifies the
// signatures the payment provider puts on its webhook callbacks.
package payment

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gleaming-gallery/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SignatureHeader carries the webhook signature token.
	SignatureHeader = "Payment-Signature"

	// WebhookAudience is the audience of every webhook signature.
	WebhookAudience = "payment-webhook"

	// SignatureTolerance is how long a webhook signature stays valid.
	SignatureTolerance = 5 * time.Minute
)

var (
	ErrNoItems          = errors.New("order has no items")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMissingKey       = errors.New("payment webhook secret is not configured")
)

// Config configures checkout sessions.
type Config struct {
	Secret   string
	Currency string
	TTL      time.Duration
	AppURL   string
}

// LineItem is a priced order line in minor currency units.
type LineItem struct {
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
	Quantity   int    `json:"quantity"`
}

// CheckoutSession is a payment session for one order.
type CheckoutSession struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	URL        string     `json:"url"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
	LineItems  []LineItem `json:"line_items"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// WebhookClaims bind a webhook body to the order it reports on.
type WebhookClaims struct {
	OrderID    string `json:"order_id"`
	BodySHA256 string `json:"body_sha256"`
	jwt.RegisteredClaims
}

// Sessions issues checkout sessions and verifies webhook signatures.
type Sessions struct {
	config Config
	now    func() time.Time
}

func NewSessions(config Config) (*Sessions, error) {
	if config.Secret == "" {
		return nil, ErrMissingKey
	}
	if config.Currency == "" {
		config.Currency = "usd"
	}
	if config.TTL <= 0 {
		config.TTL = 30 * time.Minute
	}
	return &Sessions{config: config, now: time.Now}, nil
}

// Create opens a session for order, pricing each line from the order's
// frozen unit price.
func (s *Sessions) Create(order *domain.Order) (*CheckoutSession, error) {
	if len(order.Items) == 0 {
		return nil, ErrNoItems
	}

	lineItems := make([]LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineItems = append(lineItems, LineItem{
			Name:       item.ProductName,
			ImageURL:   item.ImageURL,
			UnitAmount: item.UnitPrice.Shift(2).Round(0).IntPart(),
			Currency:   s.config.Currency,
			Quantity:   item.Quantity,
		})
	}

	id := "cs_" + uuid.NewString()

	return &CheckoutSession{
		ID:         id,
		OrderID:    order.ID,
		URL:        fmt.Sprintf("%s/checkout/%s", s.config.AppURL, id),
		SuccessURL: fmt.Sprintf("%s/account/orders?orderId=%s", s.config.AppURL, url.QueryEscape(order.ID)),
		CancelURL:  s.config.AppURL + "/cart",
		LineItems:  lineItems,
		ExpiresAt:  s.now().Add(s.config.TTL),
	}, nil
}

// SignWebhook produces the signature the payment provider sends with a
// callback body about orderID.
func (s *Sessions) SignWebhook(orderID string, body []byte) (string, error) {
	now := s.now()
	claims := &WebhookClaims{
		OrderID:    orderID,
		BodySHA256: bodyDigest(body),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "evt_" + uuid.NewString(),
			Audience:  jwt.ClaimStrings{WebhookAudience},
			Subject:   orderID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SignatureTolerance)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signature, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign webhook: %w", err)
	}
	return signature, nil
}

// VerifyWebhook checks a signature's key, audience and lifetime and that it
// was made over body.
func (s *Sessions) VerifyWebhook(signature string, body []byte) (*WebhookClaims, error) {
	token, err := jwt.ParseWithClaims(signature, &WebhookClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithAudience(WebhookAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	claims, ok := token.Claims.(*WebhookClaims)
	if !ok || !token.Valid || claims.OrderID == "" {
		return nil, ErrInvalidSignature
	}
	if subtle.ConstantTimeCompare([]byte(claims.BodySHA256), []byte(bodyDigest(body))) != 1 {
		return nil, fmt.Errorf("%w: body does not match signature", ErrInvalidSignature)
	}

	return claims, nil
}

func bodyDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Event types reported by the payment provider.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventChargeRefunded    = "charge.refunded"
	EventCheckoutExpired   = "checkout.session.expired"
)

// StatusForEvent maps a provider event type to the payment status it
// implies.
func StatusForEvent(eventType string) (domain.PaymentStatus, bool) {
	switch eventType {
	case EventCheckoutCompleted:
		return domain.PaymentStatusCompleted, true
	case EventChargeRefunded:
		return domain.PaymentStatusRefunded, true
	case EventCheckoutExpired:
		return domain.PaymentStatusPending, true
	}
	return "", false
}
