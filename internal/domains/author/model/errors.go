package model

import (
	"errors"
	"net/http"

	"catalog-backend/internal/shared/storeerr"
)

var (
	// Lookup Errors
	ErrAuthorNotFound  = errors.New("author not found")
	ErrInvalidAuthorID = errors.New("author id is not a valid uuid")

	// Request Errors
	ErrAuthorIDMismatch = errors.New("submitted author id does not match the author being deleted")
	ErrInvalidSortField = errors.New("unsupported author sort field")

	// Store Errors
	ErrStoreUnavailable = storeerr.ErrUnavailable
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidAuthorID):
		return "INVALID_AUTHOR_ID"
	case errors.Is(err, ErrAuthorIDMismatch):
		return "AUTHOR_ID_MISMATCH"
	case errors.Is(err, ErrInvalidSortField):
		return "INVALID_SORT_FIELD"
	case errors.Is(err, ErrStoreUnavailable):
		return "STORE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidAuthorID), errors.Is(err, ErrAuthorIDMismatch), errors.Is(err, ErrInvalidSortField):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
