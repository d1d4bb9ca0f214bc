package model_test

import (
	"strings"
	"testing"
	"time"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{from: model.StatusPending, to: model.StatusConfirmed, want: true},
		{from: model.StatusPending, to: model.StatusCancelled, want: true},
		{from: model.StatusPending, to: model.StatusCompleted, want: true},
		{from: model.StatusPending, to: model.StatusPending, want: false},
		{from: model.StatusConfirmed, to: model.StatusCancelled, want: true},
		{from: model.StatusConfirmed, to: model.StatusCompleted, want: true},
		{from: model.StatusConfirmed, to: model.StatusPending, want: false},
		{from: model.StatusCancelled, to: model.StatusConfirmed, want: false},
		{from: model.StatusCompleted, to: model.StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsCancellable(t *testing.T) {
	assert.True(t, model.StatusPending.IsCancellable())
	assert.True(t, model.StatusConfirmed.IsCancellable())
	assert.False(t, model.StatusCancelled.IsCancellable())
	assert.False(t, model.StatusCompleted.IsCancellable())

	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.False(t, model.Status("Unknown").IsValid())
}

func TestNewCode(t *testing.T) {
	code := model.NewCode(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	assert.Len(t, code, 20)
	assert.True(t, strings.HasPrefix(code, "BK20240601093000"))
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestBooking_Recipient(t *testing.T) {
	assert.Equal(t, "guest@example.com", model.Booking{GuestEmail: "guest@example.com", OwnerEmail: "owner@example.com"}.Recipient())
	assert.Equal(t, "owner@example.com", model.Booking{OwnerEmail: "owner@example.com"}.Recipient())
}
