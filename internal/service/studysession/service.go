// Package studysession implements the study-session lifecycle: starting
// a session, recording word reviews against it, and ending it exactly
// once.
package studysession

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// Summary is the outward-facing shape of a study session: the session
// row joined with its activity and group names and the outcome partition
// of its review items.
type Summary struct {
	ID              uuid.UUID  `json:"id"`
	GroupID         uuid.UUID  `json:"group_id"`
	StudyActivityID uuid.UUID  `json:"study_activity_id"`
	ActivityName    string     `json:"activity_name"`
	GroupName       string     `json:"group_name"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationSeconds *float64   `json:"duration_seconds"`
	ReviewItems     int        `json:"number_of_review_items"`
	CorrectItems    int        `json:"number_of_correct_review_items"`
	WrongItems      int        `json:"number_of_wrong_review_items"`
}

// Service governs the study-session state machine. A session is created
// in the open state and ended at most once; ending an already-ended
// session is an error, never a no-op. Reviews may be recorded in either
// state.
type Service interface {
	// Start opens a new session against a group and an activity.
	// Fails with the store's not-found errors when either reference does
	// not resolve, and creates no session row in that case.
	Start(ctx context.Context, groupID, activityID uuid.UUID) (*Summary, error)

	// End transitions the session to the ended state and returns the
	// updated summary. A second End on the same session fails with
	// domain.ErrSessionAlreadyEnded.
	End(ctx context.Context, sessionID uuid.UUID) (*Summary, error)

	// RecordReview appends a review item to the session's ledger, copying
	// the session's group id onto the item. Recording against an ended
	// session is allowed.
	RecordReview(ctx context.Context, sessionID, wordID uuid.UUID, isCorrect bool) (*domain.ReviewItem, error)

	// Get returns the summary of one session.
	Get(ctx context.Context, sessionID uuid.UUID) (*Summary, error)

	// List returns one page of session summaries, newest first, plus the
	// total session count.
	List(ctx context.Context, page pagination.Params) ([]*Summary, int, error)

	// ListByGroup is List scoped to one group's sessions.
	ListByGroup(ctx context.Context, groupID uuid.UUID, page pagination.Params) ([]*Summary, int, error)

	// ListByActivity is List scoped to one activity's sessions.
	ListByActivity(ctx context.Context, activityID uuid.UUID, page pagination.Params) ([]*Summary, int, error)
}

// ErrInvalidInput indicates a malformed argument, such as a nil UUID.
var ErrInvalidInput = fmt.Errorf("%w: invalid input", domain.ErrValidation)

// ServiceError wraps errors from the study session service with
// additional context, so consumers can distinguish failure sites with
// errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "end")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
