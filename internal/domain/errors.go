package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the root of all validation failures. Entity-specific
	// validation errors wrap it so callers can match the whole family with
	// errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrSessionAlreadyEnded is returned when a study session that has
	// already been ended is ended again. Ending a session is not
	// idempotent: the second call is a state-machine violation.
	ErrSessionAlreadyEnded = errors.New("study session already ended")

	// ErrSessionEndBeforeStart is returned when an end timestamp precedes
	// the session's start timestamp.
	ErrSessionEndBeforeStart = errors.New("session end time precedes start time")
)
