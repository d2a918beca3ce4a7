package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret123").
					Return(&models.User{UID: "uid-1", Username: "alice", Email: "alice@example.com"}, "jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует пароль",
			body:           `{"email": "alice@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверные учетные данные",
			body: `{"email": "alice@example.com", "password": "wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "wrong").
					Return(nil, "", apperr.New(apperr.KindUnauthorized, "invalid email or password"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid email or password"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret123").
					Return(nil, "", apperr.Wrap(apperr.KindInternal, "failed to login", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
