package models

import (
	"strconv"
	"time"

	"github.com/example/vocabbot/internal/fsrs"
)

// LegacyProgress is a row from the old user_progress table written by the
// previous SM-2 based scheduler. Kept only so old installations can be
// migrated into the cards table.
type LegacyProgress struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	WordID         int64      `json:"word_id" db:"word_id"`
	Interval       int        `json:"interval" db:"interval"`                 // days
	EasinessFactor float64    `json:"easiness_factor" db:"easiness_factor"`   // SM-2 EF parameter
	Repetitions    int        `json:"repetitions" db:"repetitions"`
	Lapses         int        `json:"lapses" db:"lapses"`
	Migrated       bool       `json:"migrated" db:"migrated"`
	LastReviewDate *time.Time `json:"last_review_date" db:"last_review_date"`
	NextReviewDate *time.Time `json:"next_review_date" db:"next_review_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// ToLegacyCard converts the row into the scheduler's migration input.
func (p *LegacyProgress) ToLegacyCard() fsrs.LegacyCard {
	return fsrs.LegacyCard{
		ItemID:      strconv.FormatInt(p.WordID, 10),
		Interval:    float64(p.Interval),
		EaseFactor:  p.EasinessFactor,
		Repetitions: p.Repetitions,
		Lapses:      p.Lapses,
		DueDate:     p.NextReviewDate,
		LastReview:  p.LastReviewDate,
	}
}
