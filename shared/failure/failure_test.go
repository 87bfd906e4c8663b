package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"lodging/shared/failure"
)

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "RoomNotFound",
			failure: failure.RoomNotFound,
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "ReservationNotFound",
			failure: failure.ReservationNotFound,
			code:    http.StatusNotFound,
			message: "reservation not found",
		},
		{
			name:    "LodgingNotFound",
			failure: failure.LodgingNotFound,
			code:    http.StatusNotFound,
			message: "lodging not found",
		},
		{
			name:    "RoomUnavailable",
			failure: failure.RoomUnavailable,
			code:    http.StatusConflict,
			message: "room is not available for the selected dates",
		},
		{
			name:    "InvalidMonthOrYear",
			failure: failure.InvalidMonthOrYear,
			code:    http.StatusBadRequest,
			message: "invalid month or year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Error())
		})
	}
}

func TestFailure_Is(t *testing.T) {
	wrapped := fmt.Errorf("create reservation: %w", failure.RoomNotFound)

	assert.ErrorIs(t, wrapped, failure.RoomNotFound)
	assert.ErrorIs(t, failure.NotFound("room not found"), failure.RoomNotFound)
	assert.NotErrorIs(t, wrapped, failure.ReservationNotFound)
	assert.NotErrorIs(t, errors.New("room not found"), failure.RoomNotFound)
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.BadRequest(tt.input))
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("custom bad request"),
			code:    http.StatusBadRequest,
			message: "custom bad request",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("missing identity"),
			code:    http.StatusUnauthorized,
			message: "missing identity",
		},
		{
			name:    "internal error",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
		{
			name:    "not found",
			err:     failure.NotFound("lodging not found"),
			code:    http.StatusNotFound,
			message: "lodging not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("room number already exists in lodging"),
			code:    http.StatusConflict,
			message: "room number already exists in lodging",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("Access denied"),
			code:    http.StatusForbidden,
			message: "Access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.ReservationNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, failure.IsNotFound(failure.RoomNotFound))
	assert.False(t, failure.IsNotFound(failure.RoomUnavailable))
	assert.False(t, failure.IsNotFound(errors.New("boom")))
}
