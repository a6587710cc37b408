package fsrs

import (
	"time"
)

// State represents the learning stage of a card.
type State int

const (
	// New is a card that has never been reviewed
	New State = iota
	// Learning is a card in its initial sub-day learning steps
	Learning
	// Review is a card that graduated into the long-term review cycle
	Review
	// Relearning is a forgotten Review card working its way back
	Relearning
)

var stateNames = [...]string{
	New:        "new",
	Learning:   "learning",
	Review:     "review",
	Relearning: "relearning",
}

// String returns the lowercase name of the state, e.g. "learning".
func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return "unknown"
}

// IsValid reports whether s is one of the four defined states.
func (s State) IsValid() bool {
	return s >= New && s <= Relearning
}

// ParseState converts a stored state name back into a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return New, ErrInvalidState
}

// Card tracks the memory state of a single learned item.
// It is a plain value: Schedule never mutates its input and returns
// a fresh Card instead, so callers can keep old versions around freely.
type Card struct {
	ItemID        string     `json:"item_id"`
	State         State      `json:"state"`
	Difficulty    float64    `json:"difficulty"`     // 1 (easy) .. 10 (hard), 0 before first review
	Stability     float64    `json:"stability"`      // days, >= 0.1 after first review
	Due           time.Time  `json:"due"`            // next scheduled review
	LastReview    *time.Time `json:"last_review"`    // nil before first review
	Reps          int        `json:"reps"`           // total reviews performed
	Lapses        int        `json:"lapses"`         // times a Review card was forgotten
	ElapsedDays   float64    `json:"elapsed_days"`   // days since LastReview at last Schedule call
	ScheduledDays float64    `json:"scheduled_days"` // interval scheduled at last graduation/review
}

// NewCard creates a fresh card for the given item in the New state.
// Due is set to now so the card is immediately reviewable.
func NewCard(itemID string, now time.Time) (Card, error) {
	if itemID == "" {
		return Card{}, ErrEmptyItemID
	}
	return Card{
		ItemID: itemID,
		State:  New,
		Due:    now,
	}, nil
}

// daysBetween returns the elapsed time between two instants in fractional days.
func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24.0
}
