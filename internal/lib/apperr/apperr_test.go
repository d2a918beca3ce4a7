package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "validation error",
			err:  New(KindValidation, "bad input"),
			want: KindValidation,
		},
		{
			name: "conflict error",
			err:  New(KindConflict, "already exists"),
			want: KindConflict,
		},
		{
			name: "wrapped with fmt.Errorf",
			err:  fmt.Errorf("service.Purchase: %w", New(KindNotFound, "plan not found")),
			want: KindNotFound,
		},
		{
			name: "plain error is internal",
			err:  errors.New("connection refused"),
			want: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "public message is preserved",
			err:  New(KindUnauthorized, "invalid email or password"),
			want: "invalid email or password",
		},
		{
			name: "wrapped cause is not exposed",
			err:  Wrap(KindInternal, "failed to load plans", errors.New("pq: relation does not exist")),
			want: "failed to load plans",
		},
		{
			name: "plain error gets neutral text",
			err:  errors.New("dial tcp: i/o timeout"),
			want: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("no rows in result set")
	err := Wrap(KindNotFound, "subscription not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "subscription not found: no rows in result set", err.Error())

	bare := New(KindConflict, "overlap")
	assert.Equal(t, "overlap", bare.Error())
	assert.NoError(t, bare.Unwrap())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want int
	}{
		{name: "validation", kind: KindValidation, want: http.StatusBadRequest},
		{name: "not found", kind: KindNotFound, want: http.StatusNotFound},
		{name: "conflict", kind: KindConflict, want: http.StatusConflict},
		{name: "unauthorized", kind: KindUnauthorized, want: http.StatusUnauthorized},
		{name: "internal", kind: KindInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}
