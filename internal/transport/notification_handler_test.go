package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/notify"
	"gleaming-gallery/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listNotifications(t *testing.T, router http.Handler) []domain.Notification {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string][]domain.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Contains(t, response, "notifications")
	return response["notifications"]
}

func TestNotifications_ListsStoreMessages(t *testing.T) {
	recorder := notify.NewRecorder(10)

	ring := sapphireRing
	category := rings
	store := service.NewCommerceStore(service.Dependencies{
		Catalog: fakeCatalog{
			categories: []*domain.Category{&category},
			products:   []*domain.Product{&ring},
		},
		Notifier: recorder,
	}, zap.NewNop())
	require.NoError(t, store.Init(context.Background()))

	router := chi.NewRouter()
	NewNotificationHandler(recorder).RegisterRoutes(router, passThrough)

	assert.Empty(t, listNotifications(t, router))

	_, err := store.RecordOrder(service.OrderRecordInput{
		ID:    "ord_1",
		Items: []service.OrderLineInput{{ProductID: ring.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = store.RecordOrder(service.OrderRecordInput{ID: "ord_1", Items: []service.OrderLineInput{{ProductID: ring.ID, Quantity: 1}}})
	require.ErrorIs(t, err, service.ErrOrderExists)

	got := listNotifications(t, router)
	require.Len(t, got, 2)
	assert.Equal(t, domain.NotificationSuccess, got[0].Kind)
	assert.Equal(t, "Order ord_1 recorded for payment.", got[0].Message)
	assert.Equal(t, domain.NotificationError, got[1].Kind)
}
