package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StudyActivity-specific validation errors
var (
	// ErrActivityIDEmpty is returned when an activity ID is empty or nil.
	ErrActivityIDEmpty = fmt.Errorf("%w: activity ID cannot be empty", ErrValidation)

	// ErrActivityNameEmpty is returned when an activity's name is empty.
	ErrActivityNameEmpty = fmt.Errorf("%w: activity name cannot be empty", ErrValidation)
)

// StudyActivity describes one kind of study exercise (flashcards, typing
// practice, and so on). Description, instructions, and thumbnail are
// opaque text carried through to the frontend.
type StudyActivity struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Instructions string    `json:"instructions"`
	Thumbnail    string    `json:"thumbnail"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStudyActivity creates a StudyActivity with a fresh UUID and UTC
// timestamps. Only the name is required to be non-empty.
func NewStudyActivity(name, description, instructions, thumbnail string) (*StudyActivity, error) {
	now := time.Now().UTC()
	activity := &StudyActivity{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		Instructions: instructions,
		Thumbnail:    thumbnail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the StudyActivity has valid data.
func (a *StudyActivity) Validate() error {
	if a.ID == uuid.Nil {
		return ErrActivityIDEmpty
	}

	if a.Name == "" {
		return ErrActivityNameEmpty
	}

	return nil
}
