package fsrs

import (
	"fmt"
	"math"
	"time"
)

// LegacyCard is the shape of a record produced by the old ease-factor
// scheduler (SM-2 style). It exists only as input to MigrateFromLegacy.
type LegacyCard struct {
	ItemID      string     `json:"item_id"`
	Interval    float64    `json:"interval"`    // days
	EaseFactor  float64    `json:"ease_factor"` // SM-2 EF, typically 1.3 .. 2.5
	Repetitions int        `json:"repetitions"`
	DueDate     *time.Time `json:"due_date"`
	LastReview  *time.Time `json:"last_review"`
	Lapses      int        `json:"lapses"`
}

// MigrateFromLegacy converts an old ease-factor record into an FSRS card.
// The conversion is one-shot and non-reversible: run it at most once per
// item, and never on a card that is already FSRS-shaped.
//
// The interval maps directly onto stability, and the ease factor maps
// linearly onto difficulty (EF 2.5 -> difficulty 1, EF 1.3 -> ~5.8).
func MigrateFromLegacy(legacy LegacyCard, now time.Time) (Card, error) {
	if legacy.ItemID == "" {
		return Card{}, fmt.Errorf("%w: %v", ErrInvalidLegacyCard, ErrEmptyItemID)
	}
	if legacy.Interval < 0 {
		return Card{}, fmt.Errorf("%w: negative interval %v", ErrInvalidLegacyCard, legacy.Interval)
	}
	if legacy.EaseFactor < 0 {
		return Card{}, fmt.Errorf("%w: negative ease factor %v", ErrInvalidLegacyCard, legacy.EaseFactor)
	}
	if legacy.Repetitions < 0 {
		return Card{}, fmt.Errorf("%w: negative repetitions %d", ErrInvalidLegacyCard, legacy.Repetitions)
	}

	state := Review
	if legacy.Interval < 1 {
		state = Learning
	}

	due := now
	if legacy.DueDate != nil {
		due = *legacy.DueDate
	}
	lastReview := now
	if legacy.LastReview != nil {
		lastReview = *legacy.LastReview
	}

	return Card{
		ItemID:        legacy.ItemID,
		State:         state,
		Stability:     math.Max(MinStability, legacy.Interval),
		Difficulty:    clampDifficulty(11 - legacy.EaseFactor*4),
		Due:           due,
		LastReview:    &lastReview,
		Reps:          legacy.Repetitions,
		Lapses:        legacy.Lapses,
		ScheduledDays: legacy.Interval,
	}, nil
}
