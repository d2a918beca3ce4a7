package show

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// MockService реализует интерфейс show.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Dashboard(ctx context.Context, userUID string) (*models.DashboardSummary, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func TestShowHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	userUID := "3f2c8a1e-6f4b-4f6a-9a8e-0d1c2b3a4f5e"

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "сводка с активной подпиской",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Dashboard", mock.Anything, userUID).Return(&models.DashboardSummary{
					Username: "alice",
					ActiveSubscriptions: []models.ActiveEntry{
						{
							SubscriptionID: 42,
							PlanName:       "Premium",
							EndsAt:         "2025-08-20T17:00:00Z",
							RemainingTime:  "2 hours 15 minutes",
						},
					},
					TotalPurchases: 3,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"remaining_time":"2 hours 15 minutes"`,
		},
		{
			name:    "сводка без активных подписок",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Dashboard", mock.Anything, userUID).Return(&models.DashboardSummary{
					Username:            "alice",
					ActiveSubscriptions: []models.ActiveEntry{},
					TotalPurchases:      0,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"active_subscriptions":[]`,
		},
		{
			name:           "пустой uid",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid user uid"}`,
		},
		{
			name:    "пользователь не найден",
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Dashboard", mock.Anything, userUID).
					Return(nil, apperr.New(apperr.KindNotFound, "user not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"user not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/dashboard/"+tt.userUID, nil)
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
