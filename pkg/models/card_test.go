package models

import (
	"testing"
	"time"

	"github.com/example/vocabbot/internal/fsrs"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewCardForWord(t *testing.T) {
	card, err := NewCardForWord(7, 42, t0)
	if err != nil {
		t.Fatalf("NewCardForWord: %v", err)
	}
	if card.UserID != 7 || card.WordID != 42 {
		t.Errorf("identity = %d/%d, want 7/42", card.UserID, card.WordID)
	}
	if card.State != "new" {
		t.Errorf("State = %q, want new", card.State)
	}
	if !card.Due.Equal(t0) {
		t.Errorf("Due = %v, want %v", card.Due, t0)
	}
}

func TestCardMemoryRoundTrip(t *testing.T) {
	last := t0.AddDate(0, 0, -3)
	mem := fsrs.Card{
		ItemID:        "42",
		State:         fsrs.Review,
		Difficulty:    4.5,
		Stability:     12.3,
		Due:           t0.AddDate(0, 0, 9),
		LastReview:    &last,
		Reps:          8,
		Lapses:        1,
		ElapsedDays:   3,
		ScheduledDays: 12,
	}

	card := Card{ID: 1, UserID: 7, WordID: 42}
	card.SetMemory(mem)
	if card.State != "review" {
		t.Errorf("State = %q, want review", card.State)
	}

	back, err := card.Memory()
	if err != nil {
		t.Fatalf("Memory: %v", err)
	}
	if back != mem {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, mem)
	}
}

func TestCardMemoryRejectsUnknownState(t *testing.T) {
	card := Card{State: "limbo"}
	if _, err := card.Memory(); err == nil {
		t.Error("Memory should fail on an unknown state")
	}
}

func TestLegacyProgressToLegacyCard(t *testing.T) {
	last := t0.AddDate(0, 0, -10)
	next := t0.AddDate(0, 0, 2)
	p := LegacyProgress{
		UserID:         7,
		WordID:         42,
		Interval:       10,
		EasinessFactor: 2.0,
		Repetitions:    3,
		Lapses:         1,
		LastReviewDate: &last,
		NextReviewDate: &next,
	}

	legacy := p.ToLegacyCard()
	if legacy.ItemID != "42" {
		t.Errorf("ItemID = %q, want 42", legacy.ItemID)
	}
	if legacy.Interval != 10 || legacy.EaseFactor != 2.0 || legacy.Repetitions != 3 || legacy.Lapses != 1 {
		t.Errorf("legacy fields mismatch: %+v", legacy)
	}
	if legacy.DueDate == nil || !legacy.DueDate.Equal(next) {
		t.Errorf("DueDate = %v, want %v", legacy.DueDate, next)
	}
}
