package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: bad field", domain.ErrValidation), http.StatusBadRequest},
		{"invalid page", pagination.ErrInvalidPage, http.StatusBadRequest},
		{"invalid page size", pagination.ErrInvalidPageSize, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"word not found", store.ErrWordNotFound, http.StatusNotFound},
		{"group not found", store.ErrGroupNotFound, http.StatusNotFound},
		{"session not found", store.ErrSessionNotFound, http.StatusNotFound},
		{"already ended", domain.ErrSessionAlreadyEnded, http.StatusConflict},
		{
			"wrapped already ended",
			fmt.Errorf("%w: session x", domain.ErrSessionAlreadyEnded),
			http.StatusConflict,
		},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusConflict},
		{"transaction failed", store.ErrTransactionFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := MapErrorToStatusCode(tc.err); got != tc.want {
				t.Errorf("Expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMapErrorToCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", domain.ErrValidation, CodeValidationError},
		{"not found", store.ErrWordNotFound, CodeNotFound},
		{"already ended", domain.ErrSessionAlreadyEnded, CodeInvalidState},
		{"duplicate", store.ErrDuplicate, CodeIntegrityError},
		{
			"store error",
			store.NewStoreError("word", "create", "insert failed", errors.New("conn reset")),
			CodeDatabaseError,
		},
		{"transaction failed", store.ErrTransactionFailed, CodeDatabaseError},
		{"unknown", errors.New("boom"), CodeInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := MapErrorToCode(tc.err); got != tc.want {
				t.Errorf("Expected code %s, got %s", tc.want, got)
			}
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := store.NewStoreError("word", "create",
		"insert failed", errors.New("pq: connection to 10.0.0.3 refused"))

	msg := GetSafeErrorMessage(internal)
	if msg != "A database error occurred" {
		t.Errorf("Expected generic database message, got %q", msg)
	}

	if got := GetSafeErrorMessage(nil); got != "An unexpected error occurred" {
		t.Errorf("Expected generic message for nil error, got %q", got)
	}

	if got := GetSafeErrorMessage(store.ErrSessionNotFound); got != "Study session not found" {
		t.Errorf("Expected session not found message, got %q", got)
	}
}
