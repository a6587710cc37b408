package fsrs

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	c, err := NewCard("casa", t0)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	if c.ItemID != "casa" {
		t.Errorf("ItemID = %q, want %q", c.ItemID, "casa")
	}
	if c.State != New {
		t.Errorf("State = %v, want New", c.State)
	}
	if c.Stability != 0 || c.Difficulty != 0 {
		t.Errorf("memory state = %v/%v, want zero before first review", c.Stability, c.Difficulty)
	}
	if !c.Due.Equal(t0) {
		t.Errorf("Due = %v, want %v", c.Due, t0)
	}
	if c.LastReview != nil {
		t.Errorf("LastReview = %v, want nil", c.LastReview)
	}
}

func TestNewCardEmptyID(t *testing.T) {
	if _, err := NewCard("", t0); !errors.Is(err, ErrEmptyItemID) {
		t.Errorf("err = %v, want ErrEmptyItemID", err)
	}
}

func TestStateStringRoundTrip(t *testing.T) {
	for _, s := range []State{New, Learning, Review, Relearning} {
		parsed, err := ParseState(s.String())
		if err != nil {
			t.Errorf("ParseState(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("round trip %v -> %q -> %v", s, s.String(), parsed)
		}
	}
	if _, err := ParseState("weird"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("ParseState(weird) err = %v, want ErrInvalidState", err)
	}
}

func TestRatingValidity(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		if !r.IsValid() {
			t.Errorf("%v should be valid", r)
		}
	}
	for _, r := range []Rating{0, 5, -3} {
		if r.IsValid() {
			t.Errorf("Rating(%d) should be invalid", int(r))
		}
		if r.String() != "unknown" {
			t.Errorf("Rating(%d).String() = %q, want unknown", int(r), r.String())
		}
	}
}
