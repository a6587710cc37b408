package models

import (
	"strconv"
	"time"

	"github.com/example/vocabbot/internal/fsrs"
)

// Card is the stored scheduling record for one user/word pair. The
// scheduler itself works on fsrs.Card values; this type adds the storage
// identity around them.
type Card struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	WordID        int64      `json:"word_id" db:"word_id"`
	State         string     `json:"state" db:"state"`
	Difficulty    float64    `json:"difficulty" db:"difficulty"`
	Stability     float64    `json:"stability" db:"stability"`
	Due           time.Time  `json:"due" db:"due"`
	LastReview    *time.Time `json:"last_review" db:"last_review"`
	Reps          int        `json:"reps" db:"reps"`
	Lapses        int        `json:"lapses" db:"lapses"`
	ElapsedDays   float64    `json:"elapsed_days" db:"elapsed_days"`
	ScheduledDays float64    `json:"scheduled_days" db:"scheduled_days"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Memory converts the stored row into the scheduler's card value.
func (c *Card) Memory() (fsrs.Card, error) {
	state, err := fsrs.ParseState(c.State)
	if err != nil {
		return fsrs.Card{}, err
	}
	return fsrs.Card{
		ItemID:        strconv.FormatInt(c.WordID, 10),
		State:         state,
		Difficulty:    c.Difficulty,
		Stability:     c.Stability,
		Due:           c.Due,
		LastReview:    c.LastReview,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
	}, nil
}

// SetMemory writes the scheduler's card value back into the stored row.
func (c *Card) SetMemory(card fsrs.Card) {
	c.State = card.State.String()
	c.Difficulty = card.Difficulty
	c.Stability = card.Stability
	c.Due = card.Due
	c.LastReview = card.LastReview
	c.Reps = card.Reps
	c.Lapses = card.Lapses
	c.ElapsedDays = card.ElapsedDays
	c.ScheduledDays = card.ScheduledDays
}

// NewCardForWord creates the stored record for a word the user just
// started learning.
func NewCardForWord(userID, wordID int64, now time.Time) (Card, error) {
	mem, err := fsrs.NewCard(strconv.FormatInt(wordID, 10), now)
	if err != nil {
		return Card{}, err
	}
	c := Card{UserID: userID, WordID: wordID}
	c.SetMemory(mem)
	return c, nil
}
