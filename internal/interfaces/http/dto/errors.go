package dto

import (
	"errors"
	"net/http"

	"github.com/erp/stockops/internal/domain/shared"
)

// General error codes
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
)

// HTTPStatusForError maps an error to an HTTP status code. Domain errors map
// by kind: validation and configuration problems are bad requests, user
// errors are unprocessable business rules, permission errors are forbidden.
func HTTPStatusForError(err error) int {
	if errors.Is(err, shared.ErrNotFound) {
		return http.StatusNotFound
	}
	switch shared.KindOf(err) {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindConfiguration:
		return http.StatusBadRequest
	case shared.KindUser:
		return http.StatusUnprocessableEntity
	case shared.KindPermission:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
