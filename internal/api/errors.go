// Package api exposes the HTTP layer: request models, handlers, and the
// mapping from internal errors to wire-level responses.
package api

import (
	"errors"
	"net/http"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/store"
)

// Stable machine-readable error codes carried in the response envelope.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodeIntegrityError      = "INTEGRITY_ERROR"
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Order
// matters: state conflicts and not-found checks run before the broad
// storage-error cases so a wrapped sentinel wins over its wrapper.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionAlreadyEnded):
		return http.StatusConflict

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusConflict

	case errors.Is(err, store.ErrTransactionFailed):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode returns the envelope error_code for an internal error.
func MapErrorToCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionAlreadyEnded):
		return CodeInvalidState

	case store.IsNotFoundError(err):
		return CodeNotFound

	case errors.Is(err, domain.ErrValidation):
		return CodeValidationError

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return CodeIntegrityError

	case isStorageError(err):
		return CodeDatabaseError

	default:
		return CodeInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an
// internal error. Raw error text never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrSessionAlreadyEnded):
		return "Study session has already ended"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrGroupNotFound):
		return "Group not found"

	case errors.Is(err, store.ErrActivityNotFound):
		return "Study activity not found"

	case errors.Is(err, store.ErrSessionNotFound):
		return "Study session not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Request references a resource that does not exist"

	case errors.Is(err, domain.ErrValidation):
		// Domain validation sentinels carry no internal detail, so the
		// wrapped message is safe to show.
		return err.Error()

	case isStorageError(err):
		return "A database error occurred"

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError translates err into status, code, and message in
// one step. Handlers call this for any error bubbling up from a service
// or store.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err),
		MapErrorToCode(err),
		GetSafeErrorMessage(err),
		err)
}

func isStorageError(err error) bool {
	var storeErr *store.StoreError
	return errors.As(err, &storeErr) || errors.Is(err, store.ErrTransactionFailed)
}
