package response

import (
	"encoding/json"
	"errors"
	"lodging/shared/constant"
	"lodging/shared/failure"
	"lodging/shared/logger"
	"net/http"
)

// ResponseErrorInternal replaces the text of errors that are not a failure.Failure.
const ResponseErrorInternal = "internal server error"

// Envelope is the body of every JSON response. Exactly one field is set.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WithMessage sends a plain text message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Envelope{Message: message})
}

// WithJSON wraps payload under "data".
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Envelope{Data: payload})
}

// WithError maps err to its HTTP status. Unclassified errors are reported as
// a generic 500 so driver and network details stay in the logs.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		write(writer, http.StatusInternalServerError, Envelope{Error: ResponseErrorInternal})

		return
	}

	write(writer, fail.Code, Envelope{Error: fail.Message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
