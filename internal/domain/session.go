package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = fmt.Errorf("%w: session ID cannot be empty", ErrValidation)

	// ErrSessionGroupIDEmpty is returned when a session's group ID is empty or nil.
	ErrSessionGroupIDEmpty = fmt.Errorf("%w: session group ID cannot be empty", ErrValidation)

	// ErrSessionActivityIDEmpty is returned when a session's activity ID is empty or nil.
	ErrSessionActivityIDEmpty = fmt.Errorf("%w: session activity ID cannot be empty", ErrValidation)
)

// StudySession is one bounded attempt at a study activity against a group
// of words. It moves through exactly two states: created (EndedAt nil)
// and ended (EndedAt set). StartedAt is immutable; EndedAt is set at most
// once and must not precede StartedAt.
type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	GroupID         uuid.UUID  `json:"group_id"`
	StudyActivityID uuid.UUID  `json:"study_activity_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewStudySession creates a StudySession in the created state, with
// StartedAt set to the current UTC time.
func NewStudySession(groupID, activityID uuid.UUID) (*StudySession, error) {
	now := time.Now().UTC()
	session := &StudySession{
		ID:              uuid.New(),
		GroupID:         groupID,
		StudyActivityID: activityID,
		StartedAt:       now,
		CreatedAt:       now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.GroupID == uuid.Nil {
		return ErrSessionGroupIDEmpty
	}

	if s.StudyActivityID == uuid.Nil {
		return ErrSessionActivityIDEmpty
	}

	if s.EndedAt != nil && s.EndedAt.Before(s.StartedAt) {
		return ErrSessionEndBeforeStart
	}

	return nil
}

// Ended reports whether the session has been ended.
func (s *StudySession) Ended() bool {
	return s.EndedAt != nil
}

// End transitions the session from created to ended, setting EndedAt to
// the given time. A second End is an error, never a no-op, and the end
// time must not precede StartedAt.
func (s *StudySession) End(at time.Time) error {
	if s.EndedAt != nil {
		return fmt.Errorf("%w: session %s", ErrSessionAlreadyEnded, s.ID)
	}

	if at.Before(s.StartedAt) {
		return ErrSessionEndBeforeStart
	}

	ended := at.UTC()
	s.EndedAt = &ended
	return nil
}

// Duration returns the elapsed time between start and end. The second
// return value is false while the session is still open.
func (s *StudySession) Duration() (time.Duration, bool) {
	if s.EndedAt == nil {
		return 0, false
	}
	return s.EndedAt.Sub(s.StartedAt), true
}
