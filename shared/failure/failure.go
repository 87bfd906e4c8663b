package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError      = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	InvalidMonthOrYear  = &Failure{Code: http.StatusBadRequest, Message: "invalid month or year"}
	InvalidDateRange    = &Failure{Code: http.StatusBadRequest, Message: "end date must be after start date"}
	RoomNotFound        = &Failure{Code: http.StatusNotFound, Message: "room not found"}
	LodgingNotFound     = &Failure{Code: http.StatusNotFound, Message: "lodging not found"}
	ReservationNotFound = &Failure{Code: http.StatusNotFound, Message: "reservation not found"}
	RoomUnavailable     = &Failure{Code: http.StatusConflict, Message: "room is not available for the selected dates"}
)

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures by code and message so wrapped copies compare equal.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code && e.Message == other.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a 404 failure.
func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}
