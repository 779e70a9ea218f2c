package transport

import (
	"net/http"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NotificationFeed lists recent store notifications, oldest first.
type NotificationFeed interface {
	Notifications() []domain.Notification
}

// NotificationsResponse is the notification listing payload
type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// NotificationHandler exposes the store's user-facing messages
type NotificationHandler struct {
	feed NotificationFeed
}

func NewNotificationHandler(feed NotificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

func (h *NotificationHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.With(rateLimit).Get("/api/notifications", h.List)
}

// List returns the recorded notifications. An empty feed is an empty list,
// never null.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.feed.Notifications()
	if items == nil {
		items = []domain.Notification{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, NotificationsResponse{Notifications: items})
}
