package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListForUser(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionInfo), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	userUID := "3f2c8a1e-6f4b-4f6a-9a8e-0d1c2b3a4f5e"
	purchasedAt := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	entries := []*models.SubscriptionInfo{
		{
			Subscription: models.Subscription{
				ID:          42,
				UserUID:     userUID,
				PlanID:      1,
				Status:      models.StatusActive,
				PurchasedAt: purchasedAt,
				EndsAt:      purchasedAt.Add(time.Hour),
			},
			PlanName:        "Basic",
			PriceCents:      500,
			DurationMinutes: 60,
		},
	}

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешный список",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("ListForUser", mock.Anything, userUID).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"plan_name":"Basic"`,
		},
		{
			name:    "пустая история",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("ListForUser", mock.Anything, userUID).Return([]*models.SubscriptionInfo{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"data":[]`,
		},
		{
			name:           "пустой uid",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid user uid"}`,
		},
		{
			name:    "ошибка сервиса",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("ListForUser", mock.Anything, userUID).
					Return(nil, apperr.Wrap(apperr.KindInternal, "failed to list subscriptions", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list subscriptions"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+tt.userUID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userUID", tt.userUID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
