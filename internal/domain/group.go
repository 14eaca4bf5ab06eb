package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Group-specific validation errors
var (
	// ErrGroupIDEmpty is returned when a group ID is empty or nil.
	ErrGroupIDEmpty = fmt.Errorf("%w: group ID cannot be empty", ErrValidation)

	// ErrGroupNameEmpty is returned when a group's name is empty.
	ErrGroupNameEmpty = fmt.Errorf("%w: group name cannot be empty", ErrValidation)
)

// Group is a named collection of words, linked through the words_groups
// join table.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// TotalWords is a live count over the join table, populated by list
	// and get queries. It is never stored.
	TotalWords int `json:"total_words"`
}

// NewGroup creates a Group with a fresh UUID and UTC timestamps.
// The description may be empty; the name may not.
func NewGroup(name, description string) (*Group, error) {
	now := time.Now().UTC()
	group := &Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGroupIDEmpty
	}

	if g.Name == "" {
		return ErrGroupNameEmpty
	}

	return nil
}
