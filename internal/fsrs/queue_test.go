package fsrs

import (
	"testing"
	"time"
)

func cardDue(itemID string, state State, due time.Time) Card {
	return Card{ItemID: itemID, State: state, Due: due, Stability: 1, Difficulty: 5}
}

func TestDueCardsFilterAndOrder(t *testing.T) {
	cards := []Card{
		cardDue("c", Review, t0.Add(-time.Hour)),
		cardDue("a", Review, t0.Add(-48*time.Hour)),
		cardDue("future", Review, t0.Add(time.Hour)),
		cardDue("b", Learning, t0.Add(-24*time.Hour)),
		cardDue("now", Learning, t0), // due == now counts as due
	}

	due := DueCards(cards, t0)
	want := []string{"a", "b", "c", "now"}
	if len(due) != len(want) {
		t.Fatalf("got %d due cards, want %d", len(due), len(want))
	}
	for i, id := range want {
		if due[i].ItemID != id {
			t.Errorf("due[%d] = %q, want %q", i, due[i].ItemID, id)
		}
	}
}

func TestDueCardsIdempotent(t *testing.T) {
	sameDue := t0.Add(-time.Hour)
	cards := []Card{
		cardDue("x", Review, sameDue),
		cardDue("y", Review, sameDue),
		cardDue("z", Review, sameDue),
	}
	first := DueCards(cards, t0)
	second := DueCards(cards, t0)
	for i := range first {
		if first[i].ItemID != second[i].ItemID {
			t.Fatalf("order not stable across calls: %v vs %v", first[i].ItemID, second[i].ItemID)
		}
	}
}

func TestDueCardsDoesNotModifyInput(t *testing.T) {
	cards := []Card{
		cardDue("b", Review, t0.Add(-time.Hour)),
		cardDue("a", Review, t0.Add(-2*time.Hour)),
	}
	DueCards(cards, t0)
	if cards[0].ItemID != "b" || cards[1].ItemID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestDueCardsEmpty(t *testing.T) {
	if due := DueCards(nil, t0); len(due) != 0 {
		t.Errorf("DueCards(nil) = %v, want empty", due)
	}
}

func TestStats(t *testing.T) {
	fresh, _ := NewCard("fresh", t0.Add(time.Hour))
	cards := []Card{
		fresh, // New, not yet due, zero stability
		cardDue("due-learning", Learning, t0.Add(-time.Hour)),
		cardDue("due-review", Review, t0.Add(-2*time.Hour)),
		cardDue("overdue-review", Review, t0.Add(-50*time.Hour)),
		cardDue("overdue-learning", Learning, t0.Add(-50*time.Hour)),
		cardDue("future-review", Review, t0.Add(72*time.Hour)),
		cardDue("relearning", Relearning, t0.Add(time.Minute)),
	}

	s := Stats(cards, t0)
	if s.Total != 7 {
		t.Errorf("Total = %d, want 7", s.Total)
	}
	if s.New != 1 || s.Learning != 2 || s.Review != 3 || s.Relearning != 1 {
		t.Errorf("state counts = %d/%d/%d/%d, want 1/2/3/1", s.New, s.Learning, s.Review, s.Relearning)
	}
	if s.Due != 4 {
		t.Errorf("Due = %d, want 4", s.Due)
	}
	// Only Review cards more than a day late count as overdue.
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
	// Averages exclude the uninitialized New card.
	assertFloat(t, "AverageStability", s.AverageStability, 1)
	assertFloat(t, "AverageDifficulty", s.AverageDifficulty, 5)
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil, t0)
	if s.Total != 0 || s.AverageStability != 0 || s.AverageDifficulty != 0 {
		t.Errorf("empty stats = %+v, want zeros", s)
	}
}
