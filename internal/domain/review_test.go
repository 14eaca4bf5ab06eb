package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewReviewItem(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	sessionID := uuid.New()
	groupID := uuid.New()

	item, err := NewReviewItem(wordID, sessionID, groupID, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if item.WordID != wordID || item.SessionID != sessionID || item.GroupID != groupID {
		t.Error("Expected review item to carry the given references")
	}

	if !item.IsCorrect {
		t.Error("Expected IsCorrect to be true")
	}

	if item.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewReviewItemValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewReviewItem(uuid.Nil, uuid.New(), uuid.New(), true); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for nil word ID, got %v", err)
	}

	if _, err := NewReviewItem(uuid.New(), uuid.Nil, uuid.New(), false); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for nil session ID, got %v", err)
	}

	if _, err := NewReviewItem(uuid.New(), uuid.New(), uuid.Nil, false); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for nil group ID, got %v", err)
	}
}
