package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PartOfSpeech classifies a word. The set is closed; anything outside it
// is rejected at construction time.
type PartOfSpeech string

const (
	PartOfSpeechNoun       PartOfSpeech = "noun"
	PartOfSpeechVerb       PartOfSpeech = "verb"
	PartOfSpeechAdjective  PartOfSpeech = "adjective"
	PartOfSpeechAdverb     PartOfSpeech = "adverb"
	PartOfSpeechPronoun    PartOfSpeech = "pronoun"
	PartOfSpeechGreeting   PartOfSpeech = "greeting"
	PartOfSpeechExpression PartOfSpeech = "expression"
	PartOfSpeechPhrase     PartOfSpeech = "phrase"
	PartOfSpeechQuestion   PartOfSpeech = "question"
	PartOfSpeechResponse   PartOfSpeech = "response"
	PartOfSpeechNumber     PartOfSpeech = "number"
)

var validPartsOfSpeech = map[PartOfSpeech]struct{}{
	PartOfSpeechNoun:       {},
	PartOfSpeechVerb:       {},
	PartOfSpeechAdjective:  {},
	PartOfSpeechAdverb:     {},
	PartOfSpeechPronoun:    {},
	PartOfSpeechGreeting:   {},
	PartOfSpeechExpression: {},
	PartOfSpeechPhrase:     {},
	PartOfSpeechQuestion:   {},
	PartOfSpeechResponse:   {},
	PartOfSpeechNumber:     {},
}

// IsValid reports whether p is a member of the closed part-of-speech set.
func (p PartOfSpeech) IsValid() bool {
	_, ok := validPartsOfSpeech[p]
	return ok
}

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = fmt.Errorf("%w: word ID cannot be empty", ErrValidation)

	// ErrWordNepaliEmpty is returned when the Nepali text is empty.
	ErrWordNepaliEmpty = fmt.Errorf("%w: nepali text cannot be empty", ErrValidation)

	// ErrWordRomanizedEmpty is returned when the romanized text is empty.
	ErrWordRomanizedEmpty = fmt.Errorf("%w: romanized text cannot be empty", ErrValidation)

	// ErrWordEnglishEmpty is returned when the English text is empty.
	ErrWordEnglishEmpty = fmt.Errorf("%w: english text cannot be empty", ErrValidation)

	// ErrWordPartsEmpty is returned when the part-of-speech list is empty.
	ErrWordPartsEmpty = fmt.Errorf("%w: at least one part of speech is required", ErrValidation)

	// ErrWordPartInvalid is returned when a part of speech is outside the
	// closed set.
	ErrWordPartInvalid = fmt.Errorf("%w: invalid part of speech", ErrValidation)
)

// Word is a vocabulary entry with Nepali, romanized, and English renderings.
type Word struct {
	ID            uuid.UUID      `json:"id"`
	NepaliText    string         `json:"nepali_word"`
	RomanizedText string         `json:"romanized_nepali_word"`
	EnglishText   string         `json:"english_word"`
	PartsOfSpeech []PartOfSpeech `json:"part_of_speech"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewWord creates a Word with a fresh UUID and UTC timestamps.
// Returns a validation error if any text field is empty or the
// part-of-speech list is empty or contains an unknown value.
func NewWord(nepali, romanized, english string, parts []PartOfSpeech) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		ID:            uuid.New(),
		NepaliText:    nepali,
		RomanizedText: romanized,
		EnglishText:   english,
		PartsOfSpeech: parts,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks the Word's invariants: non-empty text fields and a
// non-empty part-of-speech list drawn from the closed set.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.NepaliText == "" {
		return ErrWordNepaliEmpty
	}

	if w.RomanizedText == "" {
		return ErrWordRomanizedEmpty
	}

	if w.EnglishText == "" {
		return ErrWordEnglishEmpty
	}

	if len(w.PartsOfSpeech) == 0 {
		return ErrWordPartsEmpty
	}

	for _, p := range w.PartsOfSpeech {
		if !p.IsValid() {
			return fmt.Errorf("%w: %q", ErrWordPartInvalid, string(p))
		}
	}

	return nil
}
