package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_out must be after check_in")), wantCode: http.StatusBadRequest, wantMsg: "check_out must be after check_in"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid date"), wantCode: http.StatusBadRequest, wantMsg: "invalid date"},
		{name: "unauthorized", err: failure.Unauthorized("token has expired"), wantCode: http.StatusUnauthorized, wantMsg: "token has expired"},
		{name: "forbidden", err: failure.Forbidden("only the owner can cancel"), wantCode: http.StatusForbidden, wantMsg: "only the owner can cancel"},
		{name: "not found", err: failure.NotFound("room not found"), wantCode: http.StatusNotFound, wantMsg: "room not found"},
		{name: "conflict", err: failure.Conflict("room R101 is already booked"), wantCode: http.StatusConflict, wantMsg: "room R101 is already booked"},
		{name: "forbidden error", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
		{name: "invalid credentials", err: failure.InvalidCredentials, wantCode: http.StatusUnauthorized, wantMsg: "invalid username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain error", err: errors.New("connection refused"), want: http.StatusInternalServerError},
		{name: "wrapped failure", err: fmt.Errorf("failed to create booking: %w", failure.Conflict("overlap")), want: http.StatusConflict},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("failed to get room: %w", failure.NotFound("room not found"))

	assert.True(t, failure.Is(wrapped, http.StatusNotFound))
	assert.False(t, failure.Is(wrapped, http.StatusConflict))
	assert.False(t, failure.Is(errors.New("boom"), http.StatusNotFound))
}
