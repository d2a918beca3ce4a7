package register

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

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username": "alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice@example.com", "alice", "secret123").
					Return(&models.User{UID: "uid-1", Username: "alice", Email: "alice@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"uid":"uid-1"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "некорректный email",
			body:           `{"username": "alice", "email": "not-an-email", "password": "secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "короткий пароль отклоняется валидатором",
			body:           `{"username": "alice", "email": "alice@example.com", "password": "123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is too short`,
		},
		{
			name: "дубликат email",
			body: `{"username": "alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice@example.com", "alice", "secret123").
					Return(nil, apperr.New(apperr.KindValidation, "email already registered"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"email already registered"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"username": "alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice@example.com", "alice", "secret123").
					Return(nil, apperr.Wrap(apperr.KindInternal, "failed to register user", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
