package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wifi-access-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID string, planID int) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	userUID := "3f2c8a1e-6f4b-4f6a-9a8e-0d1c2b3a4f5e"
	purchasedAt := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		withAuth       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная покупка",
			body:     `{"plan_id": 1}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, userUID, 1).Return(&models.Subscription{
					ID:          42,
					UserUID:     userUID,
					PlanID:      1,
					Status:      models.StatusActive,
					PurchasedAt: purchasedAt,
					EndsAt:      purchasedAt.Add(time.Hour),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"ends_at":"2025-08-20T13:00:00Z"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"plan_id":`,
			withAuth:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует plan_id",
			body:           `{}`,
			withAuth:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PlanID is a required field`,
		},
		{
			name:           "нет авторизации",
			body:           `{"plan_id": 1}`,
			withAuth:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:     "конфликт с действующей подпиской",
			body:     `{"plan_id": 1}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, userUID, 1).Return(nil,
					apperr.New(apperr.KindConflict, "you already have an active subscription, try again in 59 minutes"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"you already have an active subscription, try again in 59 minutes"`,
		},
		{
			name:     "план не найден",
			body:     `{"plan_id": 99}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, userUID, 99).Return(nil,
					apperr.New(apperr.KindNotFound, "plan not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"plan not found"`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"plan_id": 1}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, userUID, 1).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(tt.body))
			if tt.withAuth {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, userUID))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
