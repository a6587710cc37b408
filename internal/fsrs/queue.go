package fsrs

import (
	"sort"
	"time"
)

// DueCards returns the cards that are due at the given time, sorted by due
// date ascending. The sort is stable, so repeated calls with the same
// input produce the same order. The input slice is not modified.
func DueCards(cards []Card, now time.Time) []Card {
	var due []Card
	for _, c := range cards {
		if !c.Due.After(now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Due.Before(due[j].Due)
	})
	return due
}

// Statistics summarizes a collection of cards at a point in time.
type Statistics struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	Learning   int `json:"learning"`
	Review     int `json:"review"`
	Relearning int `json:"relearning"`
	// Due counts cards with a due date at or before now.
	Due int `json:"due"`
	// Overdue counts Review cards more than one day past their due date.
	Overdue int `json:"overdue"`
	// Averages are taken only over cards with initialized memory state.
	AverageStability  float64 `json:"average_stability"`
	AverageDifficulty float64 `json:"average_difficulty"`
}

// Stats computes per-state counts, due/overdue counts and average memory
// state over the given cards.
func Stats(cards []Card, now time.Time) Statistics {
	var s Statistics
	var stabilitySum, difficultySum float64
	var initialized int

	overdueCutoff := now.AddDate(0, 0, -1)

	for _, c := range cards {
		s.Total++
		switch c.State {
		case New:
			s.New++
		case Learning:
			s.Learning++
		case Review:
			s.Review++
		case Relearning:
			s.Relearning++
		}
		if !c.Due.After(now) {
			s.Due++
		}
		if c.State == Review && c.Due.Before(overdueCutoff) {
			s.Overdue++
		}
		if c.Stability > 0 {
			initialized++
			stabilitySum += c.Stability
			difficultySum += c.Difficulty
		}
	}

	if initialized > 0 {
		s.AverageStability = stabilitySum / float64(initialized)
		s.AverageDifficulty = difficultySum / float64(initialized)
	}
	return s
}
