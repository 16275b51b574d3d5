package titles

import (
	"errors"
	"net/http"

	"title-reader/internal/backend"
	titlesvc "title-reader/internal/titles"
)

// statusFor maps fetch-flow errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, titlesvc.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrProvision), errors.Is(err, backend.ErrLaunch):
		return http.StatusServiceUnavailable
	case errors.Is(err, titlesvc.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
