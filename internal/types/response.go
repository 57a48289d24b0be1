package types

import (
	"net/http"

	"github.com/juju/errors"
)

// ServiceResponse is the body of every response the API writes.
type ServiceResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

func Success(message string, payload any, statusCode int) ServiceResponse {
	return ServiceResponse{
		Success:        true,
		Message:        message,
		ResponseObject: payload,
		StatusCode:     statusCode,
	}
}

func Failure(message string, payload any, statusCode int) ServiceResponse {
	return ServiceResponse{
		Success:        false,
		Message:        message,
		ResponseObject: payload,
		StatusCode:     statusCode,
	}
}

// FromError builds a failure response for a classified error. Unclassified
// errors become a 500 carrying internalMessage; their text is never exposed.
func FromError(err error, internalMessage string) ServiceResponse {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		return Failure(internalMessage, nil, status)
	}
	return Failure(err.Error(), nil, status)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errors.NotValid), errors.Is(err, errors.BadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errors.Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errors.NotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.AlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
