package fsrs

import (
	"errors"
	"testing"
	"time"
)

func TestMigrateFromLegacy(t *testing.T) {
	c, err := MigrateFromLegacy(LegacyCard{
		ItemID:      "casa",
		Interval:    10,
		EaseFactor:  2.0,
		Repetitions: 3,
	}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	assertFloat(t, "Stability", c.Stability, 10)
	assertFloat(t, "Difficulty", c.Difficulty, 3) // clamp(11 - 2.0*4)
	if c.State != Review {
		t.Errorf("State = %v, want Review", c.State)
	}
	if c.Reps != 3 {
		t.Errorf("Reps = %d, want 3", c.Reps)
	}
	assertFloat(t, "ScheduledDays", c.ScheduledDays, 10)
	// Missing dates default to the migration time.
	if !c.Due.Equal(t0) {
		t.Errorf("Due = %v, want %v", c.Due, t0)
	}
	if c.LastReview == nil || !c.LastReview.Equal(t0) {
		t.Errorf("LastReview = %v, want %v", c.LastReview, t0)
	}
}

func TestMigrateShortIntervalStaysLearning(t *testing.T) {
	c, err := MigrateFromLegacy(LegacyCard{ItemID: "casa", Interval: 0, EaseFactor: 2.5}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	if c.State != Learning {
		t.Errorf("State = %v, want Learning", c.State)
	}
	// Interval 0 still gets the stability floor.
	assertFloat(t, "Stability", c.Stability, MinStability)
	assertFloat(t, "Difficulty", c.Difficulty, 1) // clamp(11 - 10)
}

func TestMigrateCopiesDates(t *testing.T) {
	due := t0.AddDate(0, 0, 4)
	last := t0.AddDate(0, 0, -6)
	c, err := MigrateFromLegacy(LegacyCard{
		ItemID:     "casa",
		Interval:   10,
		EaseFactor: 2.0,
		DueDate:    &due,
		LastReview: &last,
		Lapses:     2,
	}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	if !c.Due.Equal(due) {
		t.Errorf("Due = %v, want %v", c.Due, due)
	}
	if c.LastReview == nil || !c.LastReview.Equal(last) {
		t.Errorf("LastReview = %v, want %v", c.LastReview, last)
	}
	if c.Lapses != 2 {
		t.Errorf("Lapses = %d, want 2", c.Lapses)
	}
}

func TestMigrateDifficultyClamped(t *testing.T) {
	// Very easy legacy card: EF 2.5 -> difficulty 1.
	easy, err := MigrateFromLegacy(LegacyCard{ItemID: "a", Interval: 30, EaseFactor: 2.5}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	assertFloat(t, "easy difficulty", easy.Difficulty, 1)

	// EF 0 would map to 11; clamped to 10.
	hard, err := MigrateFromLegacy(LegacyCard{ItemID: "b", Interval: 30, EaseFactor: 0}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	assertFloat(t, "hard difficulty", hard.Difficulty, 10)
}

func TestMigrateRejectsInvalidRecords(t *testing.T) {
	invalid := []LegacyCard{
		{ItemID: "", Interval: 10, EaseFactor: 2.0},
		{ItemID: "x", Interval: -1, EaseFactor: 2.0},
		{ItemID: "x", Interval: 10, EaseFactor: -0.5},
		{ItemID: "x", Interval: 10, EaseFactor: 2.0, Repetitions: -1},
	}
	for i, legacy := range invalid {
		if _, err := MigrateFromLegacy(legacy, t0); !errors.Is(err, ErrInvalidLegacyCard) {
			t.Errorf("case %d: err = %v, want ErrInvalidLegacyCard", i, err)
		}
	}
}

func TestMigratedCardSchedulable(t *testing.T) {
	e := mustEngine(t, noFuzzParams())
	c, err := MigrateFromLegacy(LegacyCard{ItemID: "casa", Interval: 10, EaseFactor: 2.0, Repetitions: 3}, t0)
	if err != nil {
		t.Fatalf("MigrateFromLegacy: %v", err)
	}
	next, err := e.Schedule(c, Good, t0.Add(10*24*time.Hour))
	if err != nil {
		t.Fatalf("Schedule after migration: %v", err)
	}
	if next.Reps != 4 {
		t.Errorf("Reps = %d, want 4", next.Reps)
	}
	if next.Stability < MinStability || next.Difficulty < 1 || next.Difficulty > 10 {
		t.Errorf("migrated card broke invariants: %+v", next)
	}
}
