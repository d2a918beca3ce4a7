package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
)

func TestCheckUserMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		ctxUID         string
		urlUID         string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "свои данные доступны",
			ctxUID:         "uid-1",
			urlUID:         "uid-1",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "маршрут без userUID пропускается",
			ctxUID:         "uid-1",
			urlUID:         "",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "чужой uid выглядит отсутствующим",
			ctxUID:         "uid-1",
			urlUID:         "uid-2",
			expectedStatus: http.StatusNotFound,
			expectNext:     false,
		},
		{
			name:           "нет uid в контексте",
			ctxUID:         "",
			urlUID:         "uid-1",
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})

			handler := CheckUserMiddleware(newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/dashboard/"+tt.urlUID, nil)
			rctx := chi.NewRouteContext()
			if tt.urlUID != "" {
				rctx.URLParams.Add("userUID", tt.urlUID)
			}
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.ctxUID != "" {
				ctx = context.WithValue(ctx, UserUID, tt.ctxUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}
