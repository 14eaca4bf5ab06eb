package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStudySession(t *testing.T) {
	t.Parallel()

	groupID := uuid.New()
	activityID := uuid.New()

	session, err := NewStudySession(groupID, activityID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if session.GroupID != groupID {
		t.Errorf("Expected group ID %s, got %s", groupID, session.GroupID)
	}

	if session.StudyActivityID != activityID {
		t.Errorf("Expected activity ID %s, got %s", activityID, session.StudyActivityID)
	}

	if session.EndedAt != nil {
		t.Error("Expected new session to be open")
	}

	if session.Ended() {
		t.Error("Expected Ended() to be false for a new session")
	}

	if _, ok := session.Duration(); ok {
		t.Error("Expected no duration for an open session")
	}
}

func TestNewStudySessionValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewStudySession(uuid.Nil, uuid.New()); !errors.Is(err, ErrSessionGroupIDEmpty) {
		t.Errorf("Expected ErrSessionGroupIDEmpty, got %v", err)
	}

	if _, err := NewStudySession(uuid.New(), uuid.Nil); !errors.Is(err, ErrSessionActivityIDEmpty) {
		t.Errorf("Expected ErrSessionActivityIDEmpty, got %v", err)
	}
}

func TestStudySessionEnd(t *testing.T) {
	t.Parallel()

	session, err := NewStudySession(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	endTime := session.StartedAt.Add(5 * time.Minute)
	if err := session.End(endTime); err != nil {
		t.Fatalf("Expected no error ending session, got %v", err)
	}

	if !session.Ended() {
		t.Error("Expected Ended() to be true after End")
	}

	duration, ok := session.Duration()
	if !ok {
		t.Fatal("Expected duration to be available after End")
	}
	if duration != 5*time.Minute {
		t.Errorf("Expected duration 5m, got %v", duration)
	}

	// Ending twice is a state violation, not a no-op.
	err = session.End(endTime.Add(time.Minute))
	if !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Errorf("Expected ErrSessionAlreadyEnded, got %v", err)
	}

	duration2, _ := session.Duration()
	if duration2 != duration {
		t.Errorf("Expected duration to be unchanged after failed End, got %v", duration2)
	}
}

func TestStudySessionEndBeforeStart(t *testing.T) {
	t.Parallel()

	session, err := NewStudySession(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = session.End(session.StartedAt.Add(-time.Second))
	if !errors.Is(err, ErrSessionEndBeforeStart) {
		t.Errorf("Expected ErrSessionEndBeforeStart, got %v", err)
	}

	if session.Ended() {
		t.Error("Expected session to remain open after rejected End")
	}
}

func TestStudySessionValidateEndBeforeStart(t *testing.T) {
	t.Parallel()

	session, err := NewStudySession(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	bad := session.StartedAt.Add(-time.Hour)
	session.EndedAt = &bad

	if err := session.Validate(); !errors.Is(err, ErrSessionEndBeforeStart) {
		t.Errorf("Expected ErrSessionEndBeforeStart, got %v", err)
	}
}
