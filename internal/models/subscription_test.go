package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_ActiveAt(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{
			name: "active before ends_at",
			sub:  Subscription{Status: StatusActive, EndsAt: now.Add(time.Hour)},
			want: true,
		},
		{
			name: "expired by time",
			sub:  Subscription{Status: StatusActive, EndsAt: now.Add(-time.Minute)},
			want: false,
		},
		{
			name: "ends_at boundary is exclusive",
			sub:  Subscription{Status: StatusActive, EndsAt: now},
			want: false,
		},
		{
			name: "cancelled is never active",
			sub:  Subscription{Status: StatusCancelled, EndsAt: now.Add(time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.ActiveAt(now))
		})
	}
}

func TestPlan_Duration(t *testing.T) {
	assert.Equal(t, time.Hour, Plan{DurationMinutes: 60}.Duration())
	assert.Equal(t, 24*time.Hour, Plan{DurationMinutes: 1440}.Duration())
}
