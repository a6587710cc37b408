package fsrs

import "errors"

// Boundary validation errors. Check with errors.Is.
var (
	// ErrInvalidRating is returned when a rating outside Again..Easy is passed to Schedule.
	ErrInvalidRating = errors.New("fsrs: invalid rating")
	// ErrInvalidState is returned when a card carries an unknown state value.
	ErrInvalidState = errors.New("fsrs: invalid card state")
	// ErrEmptyItemID is returned when a card is created without an item id.
	ErrEmptyItemID = errors.New("fsrs: empty item id")
	// ErrCorruptCard is returned when a persisted card reaches the scheduler
	// with out-of-domain memory values (e.g. non-positive stability in Review).
	ErrCorruptCard = errors.New("fsrs: corrupt card data")
	// ErrInvalidParameters is returned when engine parameters are out of bounds.
	ErrInvalidParameters = errors.New("fsrs: invalid parameters")
	// ErrInvalidLegacyCard is returned when a legacy record fails validation.
	ErrInvalidLegacyCard = errors.New("fsrs: invalid legacy card")
)
